// Package account orchestrates the login and logout flows that move the
// session between guest and authenticated mode.
package account

import (
	"context"
	"fmt"

	"github.com/ekinsoft/vitrin/internal/api"
	"github.com/ekinsoft/vitrin/internal/session"
	"github.com/ekinsoft/vitrin/internal/store"
)

// Manager owns the session tokens on behalf of the UI. The cart and wishlist
// services only ever read the session; all mutation happens here.
type Manager struct {
	session *session.Context
	client  *api.Client
	carts   *store.CartService
	wishes  *store.WishlistService
}

// New builds a Manager.
func New(sess *session.Context, client *api.Client, carts *store.CartService, wishes *store.WishlistService) *Manager {
	return &Manager{session: sess, client: client, carts: carts, wishes: wishes}
}

// Login exchanges credentials for tokens, loads the profile, and merges any
// guest cart into the server cart. The merge is awaited before Login returns
// so the first authenticated read sees the merged state. A failed profile
// load rolls the session back to guest mode.
func (m *Manager) Login(ctx context.Context, username, password string) (api.User, error) {
	tokens, err := m.client.Login(ctx, username, password)
	if err != nil {
		return api.User{}, err
	}
	m.session.SetTokens(tokens.Access, tokens.Refresh)

	user, err := m.client.Profile(ctx)
	if err != nil {
		m.session.Clear()
		return api.User{}, fmt.Errorf("load profile: %w", err)
	}

	m.carts.MergeGuestCartIfAny(ctx)
	m.carts.Changed().Notify()
	m.wishes.Changed().Notify()
	return user, nil
}

// Register creates an account. The caller follows up with Login; the server
// does not auto-authenticate on registration.
func (m *Manager) Register(ctx context.Context, in api.RegisterInput) error {
	return m.client.Register(ctx, in)
}

// Logout drops the tokens and the guest cart, returning to guest mode. The
// guest wishlist survives logout.
func (m *Manager) Logout() {
	m.session.Clear()
	m.carts.ClearGuest()
	m.wishes.Changed().Notify()
}

// Authenticated reports the current session mode.
func (m *Manager) Authenticated() bool {
	return m.session.Authenticated()
}

// Claims exposes display claims from the current access token.
func (m *Manager) Claims() session.Claims {
	return m.session.Claims()
}
