// Package checkout places orders from the unified cart. Order placement is
// the one cart-adjacent operation with no local fallback: an order that only
// existed locally would be a lie, so remote failure is surfaced to the
// caller with the server's own message.
package checkout

import (
	"context"
	"errors"
	"strings"

	"github.com/ekinsoft/vitrin/internal/api"
	"github.com/ekinsoft/vitrin/internal/store"
)

const (
	freeShippingThreshold = 1000
	standardShippingFee   = 49.9
)

// Totals are the client-computed display totals sent alongside the order.
// The server recomputes them and is authoritative.
type Totals struct {
	Subtotal float64
	Shipping float64
	Total    float64
}

// ComputeTotals derives display totals from cart lines. Orders at or above
// the free-shipping threshold ship free; an empty cart has no shipping fee.
func ComputeTotals(lines []store.Line) Totals {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.Price.Float() * float64(line.Qty)
	}
	var shipping float64
	if len(lines) > 0 && subtotal < freeShippingThreshold {
		shipping = standardShippingFee
	}
	return Totals{Subtotal: subtotal, Shipping: shipping, Total: subtotal + shipping}
}

// Input is the checkout form.
type Input struct {
	Shipping api.ShippingInfo
	Customer api.CustomerInfo
	Payment  api.PaymentInfo
}

// Service turns the current cart into an order.
type Service struct {
	carts  *store.CartService
	client *api.Client
}

// New builds a checkout Service.
func New(carts *store.CartService, client *api.Client) *Service {
	return &Service{carts: carts, client: client}
}

// PlaceOrder reads the current cart, validates the form, and submits the
// order. On success the guest cart is dropped; the server owns clearing the
// authenticated cart as part of order creation.
func (s *Service) PlaceOrder(ctx context.Context, in Input) (api.Order, error) {
	lines, _ := s.carts.Lines(ctx)
	items := normalizeItems(lines)
	if len(items) == 0 {
		return api.Order{}, errors.New("your cart is empty")
	}
	if strings.TrimSpace(in.Shipping.FullName) == "" ||
		strings.TrimSpace(in.Shipping.Address) == "" ||
		strings.TrimSpace(in.Shipping.City) == "" ||
		strings.TrimSpace(in.Shipping.Phone) == "" {
		return api.Order{}, errors.New("please fill in the required shipping fields")
	}

	totals := ComputeTotals(lines)
	order, err := s.client.CreateOrder(ctx, api.OrderInput{
		Items:    items,
		Shipping: in.Shipping,
		Customer: in.Customer,
		Payment:  in.Payment,
		Totals:   api.OrderTotals{Subtotal: totals.Subtotal, Shipping: totals.Shipping, Total: totals.Total},
	})
	if err != nil {
		return api.Order{}, err
	}

	s.carts.ClearGuest()
	return order, nil
}

// normalizeItems drops lines without a usable product id and floors
// quantities, mirroring the unified store's write normalization.
func normalizeItems(lines []store.Line) []api.OrderItemInput {
	items := make([]api.OrderItemInput, 0, len(lines))
	for _, line := range lines {
		if line.ProductID <= 0 {
			continue
		}
		qty := line.Qty
		if qty < 1 {
			qty = 1
		}
		items = append(items, api.OrderItemInput{
			ProductID: line.ProductID,
			Quantity:  qty,
			Price:     line.Price.Float(),
			Name:      line.Name,
		})
	}
	return items
}
