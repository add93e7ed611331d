package state

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestStore_UpdateAndSnapshot(t *testing.T) {
	var s Store

	before := time.Now()
	s.Update(3, 2, true, "ayse", nil)

	snap := s.Snapshot()
	if snap.CartCount != 3 || snap.WishlistCount != 2 {
		t.Fatalf("counts = %d/%d, want 3/2", snap.CartCount, snap.WishlistCount)
	}
	if !snap.Authenticated || snap.Username != "ayse" {
		t.Fatalf("session = %v/%q, want authenticated ayse", snap.Authenticated, snap.Username)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}
}

func TestStore_UpdateErrorKeepsCounts(t *testing.T) {
	var s Store

	origErr := errors.New("boom")
	s.Update(5, 1, false, "", origErr)

	// Fallback counts are still displayable, so an error must not zero them.
	snap := s.Snapshot()
	if snap.CartCount != 5 || snap.WishlistCount != 1 {
		t.Fatalf("counts = %d/%d, want 5/1 despite error", snap.CartCount, snap.WishlistCount)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	s.Update(0, 0, false, "", errors.New("fail 1"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false with 1 failure")
	}

	s.Update(0, 0, false, "", errors.New("fail 2"))
	if !s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = false, want true with 2 failures")
	}

	s.Update(0, 0, false, "", nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after success", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false after success")
	}
}
