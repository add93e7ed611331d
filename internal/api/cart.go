package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// CartLine is one row of the server-side cart. The server names the quantity
// field inconsistently across endpoints (qty vs quantity); both decode into
// Quantity.
type CartLine struct {
	ID        int64
	ProductID int64
	Name      string
	Price     Money
	Quantity  int64
}

func (l *CartLine) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        int64  `json:"id"`
		ProductID int64  `json:"product_id"`
		Name      string `json:"name"`
		Price     Money  `json:"price"`
		Qty       *int64 `json:"qty"`
		Quantity  *int64 `json:"quantity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.ID = raw.ID
	l.ProductID = raw.ProductID
	l.Name = raw.Name
	l.Price = raw.Price
	switch {
	case raw.Qty != nil:
		l.Quantity = *raw.Qty
	case raw.Quantity != nil:
		l.Quantity = *raw.Quantity
	}
	return nil
}

// FetchCart retrieves the authenticated user's cart.
func (c *Client) FetchCart(ctx context.Context) ([]CartLine, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, c.endpoint("cart"), nil, &raw, "Failed to load cart"); err != nil {
		return nil, err
	}
	rows := normalizeList(raw, "cart", "items", "results")
	lines := make([]CartLine, 0, len(rows))
	for _, row := range rows {
		var line CartLine
		if err := json.Unmarshal(row, &line); err != nil {
			return nil, &Error{Message: fmt.Sprintf("decode cart line: %v", err)}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// AddToCart adds quantity units of a product to the server cart. The server
// sums quantities when the product is already present.
func (c *Client) AddToCart(ctx context.Context, productID, quantity int64) error {
	if productID <= 0 {
		return &Error{Message: "invalid product id"}
	}
	if quantity < 1 {
		quantity = 1
	}
	body := map[string]int64{"product_id": productID, "quantity": quantity}
	return c.do(ctx, http.MethodPost, c.endpoint("cart", "add"), body, nil, "Failed to add to cart")
}

// UpdateCartItem sets the quantity on an existing cart line by its line id.
func (c *Client) UpdateCartItem(ctx context.Context, itemID, quantity int64) error {
	if itemID <= 0 {
		return &Error{Message: "invalid cart item id"}
	}
	if quantity < 1 {
		quantity = 1
	}
	body := map[string]int64{"quantity": quantity}
	return c.do(ctx, http.MethodPatch, c.endpoint("cart", strconv.FormatInt(itemID, 10)), body, nil, "Failed to update cart item")
}

// RemoveCartItem deletes a cart line by its line id.
func (c *Client) RemoveCartItem(ctx context.Context, itemID int64) error {
	if itemID <= 0 {
		return &Error{Message: "invalid cart item id"}
	}
	return c.do(ctx, http.MethodDelete, c.endpoint("cart", strconv.FormatInt(itemID, 10), "remove"), nil, nil, "Failed to remove cart item")
}

// RemoveCartItemByProduct deletes whichever cart line holds the product.
// A 404 means the line is already gone, which is the desired end state.
func (c *Client) RemoveCartItemByProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return &Error{Message: "invalid product id"}
	}
	err := c.do(ctx, http.MethodDelete, c.endpoint("cart", "product", strconv.FormatInt(productID, 10), "remove"), nil, nil, "Failed to remove cart item")
	if IsNotFound(err) {
		return nil
	}
	return err
}

// ClearCart empties the server cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, c.endpoint("cart", "clear"), nil, nil, "Failed to clear cart")
}

// MergeResult reports how many guest lines the server imported.
type MergeResult struct {
	MergedItems int64 `json:"merged_items"`
}

// MergeGuestCart asks the server to import the session's guest cart into the
// authenticated cart. Collision policy (summing quantities) is server-side.
func (c *Client) MergeGuestCart(ctx context.Context) (MergeResult, error) {
	var result MergeResult
	if err := c.do(ctx, http.MethodPost, c.endpoint("cart", "merge"), nil, &result, "Failed to merge cart"); err != nil {
		return MergeResult{}, err
	}
	return result, nil
}
