package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Order statuses the server recognizes.
const (
	OrderStatusProcessing = "processing"
	OrderStatusInTransit  = "in-transit"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderItemInput is one line of an order placement request.
type OrderItemInput struct {
	ProductID int64   `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name,omitempty"`
}

// ShippingInfo carries the checkout shipping form.
type ShippingInfo struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Phone    string `json:"phone"`
	Notes    string `json:"notes,omitempty"`
}

// CustomerInfo carries the checkout contact fields.
type CustomerInfo struct {
	Email string `json:"email"`
}

// PaymentInfo carries the selected payment method.
type PaymentInfo struct {
	Method string `json:"method"`
}

// OrderTotals carries the client-computed display totals. The server
// recomputes and is authoritative.
type OrderTotals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// OrderInput is the order placement payload.
type OrderInput struct {
	Items    []OrderItemInput `json:"items"`
	Shipping ShippingInfo     `json:"shipping"`
	Customer CustomerInfo     `json:"customer"`
	Payment  PaymentInfo      `json:"payment"`
	Totals   OrderTotals      `json:"totals"`
}

// Order mirrors the order serializer.
type Order struct {
	ID          int64  `json:"id"`
	Status      string `json:"status"`
	TotalPrice  Money  `json:"total_price"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	DeliveredAt string `json:"delivered_at"`
}

// CreateOrder places an order. Unlike cart bookkeeping this call has no
// local fallback anywhere above it: failure must reach the user.
func (c *Client) CreateOrder(ctx context.Context, in OrderInput) (Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, c.endpoint("orders"), in, &order, "Unable to create order"); err != nil {
		return Order{}, err
	}
	return order, nil
}

// FetchOrders lists the authenticated user's order history.
func (c *Client) FetchOrders(ctx context.Context) ([]Order, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, c.endpoint("orders"), nil, &raw, "Failed to load orders"); err != nil {
		return nil, err
	}
	rows := normalizeList(raw, "results", "orders")
	orders := make([]Order, 0, len(rows))
	for _, row := range rows {
		var order Order
		if err := json.Unmarshal(row, &order); err != nil {
			return nil, &Error{Message: fmt.Sprintf("decode order: %v", err)}
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// FetchOrder retrieves one order.
func (c *Client) FetchOrder(ctx context.Context, orderID int64) (Order, error) {
	if orderID <= 0 {
		return Order{}, &Error{Message: "invalid order id"}
	}
	var order Order
	if err := c.do(ctx, http.MethodGet, c.endpoint("orders", strconv.FormatInt(orderID, 10)), nil, &order, "Failed to load order"); err != nil {
		return Order{}, err
	}
	return order, nil
}

// CancelOrder requests cancellation of an order still in a cancellable state.
func (c *Client) CancelOrder(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return &Error{Message: "invalid order id"}
	}
	return c.do(ctx, http.MethodPost, c.endpoint("orders", strconv.FormatInt(orderID, 10), "cancel"), nil, nil, "Failed to cancel order")
}

// UpdateOrderStatus sets an order's status. Admin console only; the server
// enforces staff permission.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	if orderID <= 0 {
		return &Error{Message: "invalid order id"}
	}
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPatch, c.endpoint("orders", strconv.FormatInt(orderID, 10), "status"), body, nil, "Failed to update order status")
}
