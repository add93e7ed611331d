package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot is the latest badge data available to the UI: the cart and
// wishlist counts plus session mode. Counts are always present, because the
// services fall back to guest data when the API is unreachable, so on
// failure the snapshot still carries displayable numbers alongside the error.
type Snapshot struct {
	CartCount           int64
	WishlistCount       int64
	Authenticated       bool
	Username            string
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple
// consecutive refreshes.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent snapshot updates between the badge poller
// and the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. A non-nil err marks the counts as
// derived from guest fallback data and bumps the failure streak.
func (s *Store) Update(cartCount, wishlistCount int64, authenticated bool, username string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.CartCount = cartCount
	s.snapshot.WishlistCount = wishlistCount
	s.snapshot.Authenticated = authenticated
	s.snapshot.Username = username
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
