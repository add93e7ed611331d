package app

import (
	"context"
	"testing"

	"github.com/ekinsoft/vitrin/internal/api"
	"github.com/ekinsoft/vitrin/internal/localstore"
	"github.com/ekinsoft/vitrin/internal/session"
	"github.com/ekinsoft/vitrin/internal/state"
	"github.com/ekinsoft/vitrin/internal/store"
)

func newRefreshFixture(t *testing.T) (*state.Store, *store.CartService, *store.WishlistService, *session.Context) {
	t.Helper()

	local := localstore.Open(t.TempDir())
	sess := session.New(local)
	// Closed port: every remote call fails fast.
	client, err := api.NewClient("http://127.0.0.1:1/api", sess)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	carts := store.NewCart(local, client, sess)
	wishes := store.NewWishlist(local, client, sess)
	return &state.Store{}, carts, wishes, sess
}

func TestRefresh_GuestCountsWithoutError(t *testing.T) {
	badges, carts, wishes, sess := newRefreshFixture(t)
	ctx := context.Background()

	carts.Add(ctx, 1, 2)
	wishes.Add(ctx, 9)

	refresh(ctx, badges, carts, wishes, sess)

	snap := badges.Snapshot()
	if snap.CartCount != 2 || snap.WishlistCount != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", snap.CartCount, snap.WishlistCount)
	}
	if snap.Authenticated {
		t.Fatal("Authenticated = true, want false")
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil in guest mode", snap.LastError)
	}
}

func TestRefresh_UnreachableRemoteRecordsFallback(t *testing.T) {
	badges, carts, wishes, sess := newRefreshFixture(t)
	ctx := context.Background()

	carts.Add(ctx, 1, 3)
	sess.SetTokens("tok", "")

	refresh(ctx, badges, carts, wishes, sess)

	snap := badges.Snapshot()
	if snap.LastError == nil {
		t.Fatal("LastError = nil, want unsynced error")
	}
	if snap.CartCount != 3 {
		t.Fatalf("CartCount = %d, want 3 from guest fallback", snap.CartCount)
	}
	if !snap.Authenticated {
		t.Fatal("Authenticated = false, want true")
	}
}

func TestStartPoller_ReturnsImmediately(t *testing.T) {
	badges, carts, wishes, sess := newRefreshFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartPoller(ctx, badges, carts, wishes, sess, 0)
}
