package account

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekinsoft/vitrin/internal/api"
	"github.com/ekinsoft/vitrin/internal/localstore"
	"github.com/ekinsoft/vitrin/internal/session"
	"github.com/ekinsoft/vitrin/internal/store"
)

type fixture struct {
	manager *Manager
	carts   *store.CartService
	wishes  *store.WishlistService
	sess    *session.Context
}

func newFixture(t *testing.T, handler http.Handler) *fixture {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	local := localstore.Open(t.TempDir())
	sess := session.New(local)
	client, err := api.NewClient(srv.URL+"/api", sess)
	require.NoError(t, err)

	carts := store.NewCart(local, client, sess)
	wishes := store.NewWishlist(local, client, sess)
	return &fixture{
		manager: New(sess, client, carts, wishes),
		carts:   carts,
		wishes:  wishes,
		sess:    sess,
	}
}

func TestLogin_MergesGuestCart(t *testing.T) {
	mergeCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access":"acc","refresh":"ref"}`))
	})
	mux.HandleFunc("/api/users/profile/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"username":"ayse"}`))
	})
	mux.HandleFunc("/api/cart/merge/", func(w http.ResponseWriter, r *http.Request) {
		mergeCalls++
		w.Write([]byte(`{"merged_items":1}`))
	})

	f := newFixture(t, mux)
	ctx := context.Background()
	f.carts.Add(ctx, 5, 2)

	user, err := f.manager.Login(ctx, "ayse", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ayse", user.Username)
	assert.True(t, f.manager.Authenticated())
	assert.Equal(t, 1, mergeCalls)

	// The guest cart must be gone once the merge has run.
	f.sess.Clear()
	lines, _ := f.carts.Lines(ctx)
	assert.Empty(t, lines)
}

func TestLogin_ProfileFailureRollsBack(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access":"acc","refresh":"ref"}`))
	})
	mux.HandleFunc("/api/users/profile/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"boom"}`))
	})

	f := newFixture(t, mux)

	_, err := f.manager.Login(context.Background(), "ayse", "secret")
	require.Error(t, err)
	assert.False(t, f.manager.Authenticated())
}

func TestLogin_BadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
	})

	f := newFixture(t, mux)

	_, err := f.manager.Login(context.Background(), "ayse", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No active account")
	assert.False(t, f.manager.Authenticated())
}

func TestLogout_KeepsGuestWishlist(t *testing.T) {
	f := newFixture(t, http.NewServeMux())
	ctx := context.Background()

	f.carts.Add(ctx, 5, 1)
	f.wishes.Add(ctx, 9)
	f.sess.SetTokens("acc", "ref")

	f.manager.Logout()

	assert.False(t, f.manager.Authenticated())
	lines, _ := f.carts.Lines(ctx)
	assert.Empty(t, lines)
	assert.True(t, f.wishes.Contains(ctx, 9))
}
