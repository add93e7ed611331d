package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Product mirrors the catalog serializer.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         Money   `json:"price"`
	Stock         int64   `json:"stock"`
	Category      string  `json:"category"`
	Image         string  `json:"image"`
	AverageRating float64 `json:"average_rating"`
}

// Category is a catalog category row.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductQuery filters and pages the catalog listing.
type ProductQuery struct {
	Page     int
	Search   string
	Category string
}

// ProductPage is one page of catalog results in DRF pagination shape.
type ProductPage struct {
	Count    int64     `json:"count"`
	Next     string    `json:"next"`
	Previous string    `json:"previous"`
	Results  []Product `json:"results"`
}

// FetchProducts lists the catalog. Both the paginated object shape and a
// bare array are accepted.
func (c *Client) FetchProducts(ctx context.Context, query ProductQuery) (ProductPage, error) {
	u := c.endpoint("products")
	values := url.Values{}
	if query.Page > 1 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if search := strings.TrimSpace(query.Search); search != "" {
		values.Set("search", search)
	}
	if category := strings.TrimSpace(query.Category); category != "" {
		values.Set("category", category)
	}
	u.RawQuery = values.Encode()

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, u, nil, &raw, "Failed to load products"); err != nil {
		return ProductPage{}, err
	}

	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var products []Product
		if err := decodeInto(raw, &products); err != nil {
			return ProductPage{}, err
		}
		return ProductPage{Count: int64(len(products)), Results: products}, nil
	}
	var page ProductPage
	if err := decodeInto(raw, &page); err != nil {
		return ProductPage{}, err
	}
	return page, nil
}

// FetchProduct retrieves one product by id.
func (c *Client) FetchProduct(ctx context.Context, productID int64) (Product, error) {
	if productID <= 0 {
		return Product{}, &Error{Message: "invalid product id"}
	}
	var product Product
	if err := c.do(ctx, http.MethodGet, c.endpoint("products", strconv.FormatInt(productID, 10)), nil, &product, "Failed to load product"); err != nil {
		return Product{}, err
	}
	return product, nil
}

// FetchCategories lists catalog categories.
func (c *Client) FetchCategories(ctx context.Context) ([]Category, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, c.endpoint("products", "categories"), nil, &raw, "Failed to load categories"); err != nil {
		return nil, err
	}
	rows := normalizeList(raw, "results")
	categories := make([]Category, 0, len(rows))
	for _, row := range rows {
		var category Category
		if err := json.Unmarshal(row, &category); err != nil {
			continue
		}
		categories = append(categories, category)
	}
	return categories, nil
}
