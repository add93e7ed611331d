package notify

import "testing"

func TestSignal_NotifyReachesAllSubscribers(t *testing.T) {
	var s Signal

	var a, b int
	s.Subscribe(func() { a++ })
	s.Subscribe(func() { b++ })

	s.Notify()
	s.Notify()

	if a != 2 || b != 2 {
		t.Fatalf("subscriber calls = %d/%d, want 2/2", a, b)
	}
}

func TestSignal_Unsubscribe(t *testing.T) {
	var s Signal

	var calls int
	unsubscribe := s.Subscribe(func() { calls++ })

	s.Notify()
	unsubscribe()
	s.Notify()

	if calls != 1 {
		t.Fatalf("calls = %d, want 1 after unsubscribe", calls)
	}

	// Double unsubscribe is harmless.
	unsubscribe()
	s.Notify()
	if calls != 1 {
		t.Fatalf("calls = %d, want still 1", calls)
	}
}

func TestSignal_SubscriberMayUnsubscribeDuringNotify(t *testing.T) {
	var s Signal

	var calls int
	var unsubscribe func()
	unsubscribe = s.Subscribe(func() {
		calls++
		unsubscribe()
	})

	s.Notify()
	s.Notify()

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestSignal_ZeroValueNotifyIsSafe(t *testing.T) {
	var s Signal
	s.Notify()
}
