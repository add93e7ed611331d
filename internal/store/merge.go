package store

import (
	"context"
	"log"
)

// MergeGuestCartIfAny transfers the guest cart into the server cart. Called
// once, immediately after a login resolves with a valid token and before the
// first authenticated read is assumed consistent.
//
// The transfer is at-most-once and best-effort: a single bulk merge call is
// attempted first, and on failure each guest line is added individually, with
// per-line failures dropped. The guest cart is cleared unconditionally once a
// merge has been attempted so a later login can never merge the same lines
// twice.
func (s *CartService) MergeGuestCartIfAny(ctx context.Context) {
	if !s.session.Authenticated() {
		return
	}
	guest := s.guestLines()
	if len(guest) == 0 {
		return
	}

	_, err := s.remote.MergeGuestCart(ctx)
	if err == nil {
		s.clearGuest()
		s.changed.Notify()
		return
	}
	log.Printf("cart: bulk merge failed, migrating lines individually: %v", err)

	for _, line := range guest {
		if err := s.remote.AddToCart(ctx, line.ProductID, clampQty(line.Qty)); err != nil {
			log.Printf("cart: merge of product %d failed, line dropped: %v", line.ProductID, err)
		}
	}
	s.clearGuest()
	s.changed.Notify()
}
