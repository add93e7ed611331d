// Package notify implements the change notification signal shared by the
// cart and wishlist services. The signal carries no payload: subscribers
// always re-derive current state by calling back into the owning service, so
// racing writes can never deliver a stale value.
package notify

import "sync"

// Signal fans a notification out to every subscriber. The zero value is
// ready to use.
type Signal struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

// Subscribe registers fn to run on every Notify call and returns an
// unsubscribe function. Calling unsubscribe more than once is harmless.
func (s *Signal) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]func())
	}
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Notify invokes every subscriber. Callbacks run outside the signal's lock
// so a subscriber may re-subscribe or unsubscribe from within its handler.
func (s *Signal) Notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
