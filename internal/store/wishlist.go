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

const guestWishlistKey = "guest_wishlist"

// Entry is the unified wishlist entry. The guest store persists bare product
// ids; server rows also carry a display name and price.
type Entry struct {
	ProductID int64
	Name      string
	Price     api.Money
}

// WishlistService is the unified wishlist over the guest store and the
// remote API. A product appears at most once; adding it again is success.
type WishlistService struct {
	local   *localstore.Store
	remote  *api.Client
	session *session.Context
	changed notify.Signal
}

// NewWishlist builds a WishlistService.
func NewWishlist(local *localstore.Store, remote *api.Client, sess *session.Context) *WishlistService {
	return &WishlistService{local: local, remote: remote, session: sess}
}

// Changed is the wishlist's change notification signal.
func (s *WishlistService) Changed() *notify.Signal {
	return &s.changed
}

// Entries returns the wishlist from the authoritative store, falling back to
// guest contents on remote failure.
func (s *WishlistService) Entries(ctx context.Context) (entries []Entry, synced bool) {
	if !s.session.Authenticated() {
		return s.guestEntries(), true
	}
	remote, err := s.remote.FetchWishlist(ctx)
	if err != nil {
		log.Printf("wishlist: fetch failed, serving guest data: %v", err)
		return s.guestEntries(), false
	}
	entries = make([]Entry, 0, len(remote))
	for _, row := range remote {
		entries = append(entries, Entry{ProductID: row.ProductID, Name: row.ProductName, Price: row.ProductPrice})
	}
	return entries, true
}

// ProductIDs returns the wishlisted product ids in store order.
func (s *WishlistService) ProductIDs(ctx context.Context) (ids []int64, synced bool) {
	entries, synced := s.Entries(ctx)
	ids = make([]int64, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ProductID)
	}
	return ids, synced
}

// Add puts a product on the wishlist. Duplicate adds are idempotent success
// in both modes.
func (s *WishlistService) Add(ctx context.Context, productID int64) (synced bool) {
	id := normalizeID(productID)
	if id == 0 {
		return true
	}

	if s.session.Authenticated() {
		if err := s.remote.AddToWishlist(ctx, id); err != nil {
			log.Printf("wishlist: add failed, falling back to guest store: %v", err)
			s.addGuest(id)
			return false
		}
		s.changed.Notify()
		return true
	}
	s.addGuest(id)
	return true
}

// Remove takes a product off the wishlist. The remote path keys on product
// id; an already-absent product (server 404) is success.
func (s *WishlistService) Remove(ctx context.Context, productID int64) (synced bool) {
	id := normalizeID(productID)
	if id == 0 {
		return true
	}

	if s.session.Authenticated() {
		if err := s.remote.RemoveWishlistItemByProduct(ctx, id); err != nil {
			log.Printf("wishlist: remove failed, falling back to guest store: %v", err)
			s.removeGuest(id)
			return false
		}
		s.changed.Notify()
		return true
	}
	s.removeGuest(id)
	return true
}

// Contains reports whether the product is wishlisted in the authoritative
// store, falling back to the guest store on remote failure.
func (s *WishlistService) Contains(ctx context.Context, productID int64) bool {
	id := normalizeID(productID)
	if id == 0 {
		return false
	}
	ids, _ := s.ProductIDs(ctx)
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// Toggle adds the product when absent and removes it when present.
func (s *WishlistService) Toggle(ctx context.Context, productID int64) (synced bool) {
	id := normalizeID(productID)
	if id == 0 {
		return true
	}
	if s.Contains(ctx, id) {
		return s.Remove(ctx, id)
	}
	return s.Add(ctx, id)
}

// Count returns the number of wishlisted products.
func (s *WishlistService) Count(ctx context.Context) (count int64, synced bool) {
	entries, synced := s.Entries(ctx)
	return int64(len(entries)), synced
}

// ClearGuest drops the guest wishlist. Used by logout; the server wishlist
// is never cleared wholesale.
func (s *WishlistService) ClearGuest() {
	s.local.Delete(guestWishlistKey)
	s.changed.Notify()
}

func (s *WishlistService) guestEntries() []Entry {
	ids := s.guestIDs()
	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, Entry{ProductID: id})
	}
	return entries
}

func (s *WishlistService) guestIDs() []int64 {
	raw := s.local.Get(guestWishlistKey)
	if raw == "" {
		return nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		// A corrupt guest wishlist self-heals to empty.
		return nil
	}
	return ids
}

func (s *WishlistService) setGuestIDs(ids []int64) {
	encoded, err := json.Marshal(ids)
	if err != nil {
		return
	}
	s.local.Set(guestWishlistKey, string(encoded))
	s.changed.Notify()
}

func (s *WishlistService) addGuest(productID int64) {
	ids := s.guestIDs()
	for _, id := range ids {
		if id == productID {
			return
		}
	}
	s.setGuestIDs(append(ids, productID))
}

func (s *WishlistService) removeGuest(productID int64) {
	ids := s.guestIDs()
	kept := ids[:0]
	for _, id := range ids {
		if id != productID {
			kept = append(kept, id)
		}
	}
	s.setGuestIDs(kept)
}
