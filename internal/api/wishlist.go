package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// WishlistEntry is one row of the server-side wishlist. The row id is
// distinct from the product id and is what deletion keys on. The product
// field arrives either as a bare id or as a nested product object.
type WishlistEntry struct {
	ID           int64
	ProductID    int64
	ProductName  string
	ProductPrice Money
	CreatedAt    string
}

func (e *WishlistEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           int64           `json:"id"`
		Product      json.RawMessage `json:"product"`
		ProductName  string          `json:"product_name"`
		ProductPrice Money           `json:"product_price"`
		CreatedAt    string          `json:"created_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.ID = raw.ID
	e.ProductName = raw.ProductName
	e.ProductPrice = raw.ProductPrice
	e.CreatedAt = raw.CreatedAt
	e.ProductID = productIDFrom(raw.Product)
	return nil
}

// productIDFrom accepts either a bare integer or a nested {"id": n, ...}
// product object.
func productIDFrom(raw json.RawMessage) int64 {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return 0
	}
	if trimmed[0] == '{' {
		var nested struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(raw, &nested); err == nil {
			return nested.ID
		}
		return 0
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err == nil {
		return id
	}
	return 0
}

// FetchWishlist retrieves the authenticated user's wishlist.
func (c *Client) FetchWishlist(ctx context.Context) ([]WishlistEntry, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, c.endpoint("wishlist"), nil, &raw, "Failed to load wishlist"); err != nil {
		return nil, err
	}
	rows := normalizeList(raw, "results", "items")
	entries := make([]WishlistEntry, 0, len(rows))
	for _, row := range rows {
		var entry WishlistEntry
		if err := json.Unmarshal(row, &entry); err != nil {
			return nil, &Error{Message: fmt.Sprintf("decode wishlist entry: %v", err)}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// AddToWishlist adds a product to the server wishlist. A duplicate add is
// reported by the server as a 400 "already in wishlist" error and is treated
// here as success.
func (c *Client) AddToWishlist(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return &Error{Message: "invalid product id"}
	}
	body := map[string]int64{"product": productID}
	err := c.do(ctx, http.MethodPost, c.endpoint("wishlist"), body, nil, "Failed to add to wishlist")
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest && strings.Contains(strings.ToLower(apiErr.Message), "already") {
		return nil
	}
	return err
}

// RemoveWishlistItem deletes a wishlist row by its row id.
func (c *Client) RemoveWishlistItem(ctx context.Context, wishlistItemID int64) error {
	if wishlistItemID <= 0 {
		return &Error{Message: "invalid wishlist item id"}
	}
	return c.do(ctx, http.MethodDelete, c.endpoint("wishlist", strconv.FormatInt(wishlistItemID, 10)), nil, nil, "Failed to remove from wishlist")
}

// RemoveWishlistItemByProduct deletes the wishlist row holding the product.
// A 404 (already absent) is success.
func (c *Client) RemoveWishlistItemByProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return &Error{Message: "invalid product id"}
	}
	err := c.do(ctx, http.MethodDelete, c.endpoint("wishlist", "product", strconv.FormatInt(productID, 10)), nil, nil, "Failed to remove from wishlist")
	if IsNotFound(err) {
		return nil
	}
	return err
}
