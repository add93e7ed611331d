// Package store implements the dual-mode cart and wishlist services. Every
// operation decides at call time whether the local guest store or the remote
// API is authoritative, based on access-token presence, and falls back to the
// guest store when a remote call fails so a user action is never lost.
package store

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ekinsoft/vitrin/internal/api"
	"github.com/ekinsoft/vitrin/internal/localstore"
	"github.com/ekinsoft/vitrin/internal/notify"
	"github.com/ekinsoft/vitrin/internal/session"
)

const guestCartKey = "guest_cart"

// Line is the unified cart entry shape exposed to UI code. Only ProductID
// and Qty persist in the guest store; the remaining fields are filled from
// server rows in authenticated mode.
type Line struct {
	ProductID int64     `json:"productId"`
	Qty       int64     `json:"qty"`
	ItemID    int64     `json:"-"`
	Name      string    `json:"-"`
	Price     api.Money `json:"-"`
}

// CartService is the unified cart over the guest store and the remote API.
type CartService struct {
	local   *localstore.Store
	remote  *api.Client
	session *session.Context
	changed notify.Signal
}

// NewCart builds a CartService. The session context is read on every call,
// never cached, so a login mid-session takes effect immediately.
func NewCart(local *localstore.Store, remote *api.Client, sess *session.Context) *CartService {
	return &CartService{local: local, remote: remote, session: sess}
}

// Changed is the cart's change notification signal. It fires after every
// write to either backing store and carries no payload.
func (s *CartService) Changed() *notify.Signal {
	return &s.changed
}

// Lines returns the cart contents from the authoritative store. When a
// remote fetch fails the guest store's contents are served instead and
// synced is false; reads never return an error to the UI.
func (s *CartService) Lines(ctx context.Context) (lines []Line, synced bool) {
	if !s.session.Authenticated() {
		return s.guestLines(), true
	}
	remote, err := s.remote.FetchCart(ctx)
	if err != nil {
		log.Printf("cart: fetch failed, serving guest data: %v", err)
		return s.guestLines(), false
	}
	lines = make([]Line, 0, len(remote))
	for _, row := range remote {
		lines = append(lines, Line{
			ProductID: row.ProductID,
			Qty:       row.Quantity,
			ItemID:    row.ID,
			Name:      row.Name,
			Price:     row.Price,
		})
	}
	return lines, true
}

// Add puts qty units of a product in the cart, summing with any existing
// line for the same product. Returns whether the authoritative store applied
// the write; false means the remote call failed and the guest store absorbed
// the change instead.
func (s *CartService) Add(ctx context.Context, productID, qty int64) (synced bool) {
	id := normalizeID(productID)
	if id == 0 {
		return true
	}
	qty = clampQty(qty)

	if s.session.Authenticated() {
		if err := s.remote.AddToCart(ctx, id, qty); err != nil {
			log.Printf("cart: add failed, falling back to guest store: %v", err)
			s.addGuest(id, qty)
			return false
		}
		s.changed.Notify()
		return true
	}
	s.addGuest(id, qty)
	return true
}

// UpdateQty sets the quantity on the line holding productID. Quantities
// below 1 are floored to 1; a zero-quantity line must go through Remove.
// In authenticated mode the current line list is resolved first so the
// update targets the server's line id; a product not in the server cart is
// added instead.
func (s *CartService) UpdateQty(ctx context.Context, productID, qty int64) (synced bool) {
	id := normalizeID(productID)
	if id == 0 {
		return true
	}
	qty = clampQty(qty)

	if s.session.Authenticated() {
		lines, ok := s.Lines(ctx)
		if ok {
			if line, found := findLine(lines, id); found && line.ItemID > 0 {
				err := s.remote.UpdateCartItem(ctx, line.ItemID, qty)
				if err == nil {
					s.changed.Notify()
					return true
				}
				log.Printf("cart: update failed, falling back to guest store: %v", err)
				s.updateGuest(id, qty)
				return false
			}
			// Product not in the server cart: add it instead.
			err := s.remote.AddToCart(ctx, id, qty)
			if err == nil {
				s.changed.Notify()
				return true
			}
			log.Printf("cart: update-add failed, falling back to guest store: %v", err)
		}
		s.updateGuest(id, qty)
		return false
	}
	s.updateGuest(id, qty)
	return true
}

// Remove drops the line holding productID. The store resolves the product id
// to whatever key the backing store needs; callers never see line ids.
func (s *CartService) Remove(ctx context.Context, productID int64) (synced bool) {
	id := normalizeID(productID)
	if id == 0 {
		return true
	}

	if s.session.Authenticated() {
		if err := s.remote.RemoveCartItemByProduct(ctx, id); err != nil {
			log.Printf("cart: remove failed, falling back to guest store: %v", err)
			s.removeGuest(id)
			return false
		}
		s.changed.Notify()
		return true
	}
	s.removeGuest(id)
	return true
}

// Clear empties the authoritative cart. All-or-nothing: an authenticated
// clear that fails remotely does not touch the guest store.
func (s *CartService) Clear(ctx context.Context) (synced bool) {
	if s.session.Authenticated() {
		if err := s.remote.ClearCart(ctx); err != nil {
			log.Printf("cart: clear failed: %v", err)
			return false
		}
		s.changed.Notify()
		return true
	}
	s.clearGuest()
	s.changed.Notify()
	return true
}

// Count sums quantities over the authoritative store, with the same
// guest-fallback policy as Lines.
func (s *CartService) Count(ctx context.Context) (count int64, synced bool) {
	lines, synced := s.Lines(ctx)
	for _, line := range lines {
		count += line.Qty
	}
	return count, synced
}

// Guest store helpers. All writes go through setGuestLines so every local
// mutation fires the change signal.

func (s *CartService) guestLines() []Line {
	raw := s.local.Get(guestCartKey)
	if raw == "" {
		return nil
	}
	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		// A corrupt guest cart self-heals to empty.
		return nil
	}
	return lines
}

func (s *CartService) setGuestLines(lines []Line) {
	encoded, err := json.Marshal(lines)
	if err != nil {
		return
	}
	s.local.Set(guestCartKey, string(encoded))
	s.changed.Notify()
}

func (s *CartService) addGuest(productID, qty int64) {
	lines := s.guestLines()
	for i := range lines {
		if normalizeID(lines[i].ProductID) == productID {
			lines[i].Qty += qty
			s.setGuestLines(lines)
			return
		}
	}
	s.setGuestLines(append(lines, Line{ProductID: productID, Qty: qty}))
}

func (s *CartService) updateGuest(productID, qty int64) {
	lines := s.guestLines()
	updated := false
	for i := range lines {
		if normalizeID(lines[i].ProductID) == productID {
			lines[i].Qty = qty
			updated = true
		}
	}
	if updated {
		s.setGuestLines(lines)
	}
}

func (s *CartService) removeGuest(productID int64) {
	lines := s.guestLines()
	kept := lines[:0]
	for _, line := range lines {
		if normalizeID(line.ProductID) != productID {
			kept = append(kept, line)
		}
	}
	s.setGuestLines(kept)
}

func (s *CartService) clearGuest() {
	s.local.Delete(guestCartKey)
}

// ClearGuest drops the guest cart without touching the server cart. Used by
// logout and by checkout after a successful order.
func (s *CartService) ClearGuest() {
	s.clearGuest()
	s.changed.Notify()
}

func findLine(lines []Line, productID int64) (Line, bool) {
	for _, line := range lines {
		if normalizeID(line.ProductID) == productID {
			return line, true
		}
	}
	return Line{}, false
}

// normalizeID rejects non-positive product ids. Invalid ids make the calling
// operation a no-op rather than corrupting either store.
func normalizeID(productID int64) int64 {
	if productID <= 0 {
		return 0
	}
	return productID
}

// clampQty floors quantities to 1. A zero or negative quantity is never
// stored; removal is expressed through Remove, not a zero update.
func clampQty(qty int64) int64 {
	if qty < 1 {
		return 1
	}
	return qty
}
