// Package session tracks the authentication state that decides which backing
// store the cart and wishlist services talk to. The access token lives in the
// local store; its presence is the sole signal for authenticated mode, and it
// is re-read on every call so a login or logout mid-session takes effect on
// the next operation.
package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/ekinsoft/vitrin/internal/localstore"
)

// Local store keys owned by the auth flow.
const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

// Mode says which backing store is authoritative for the current call.
type Mode int

const (
	Guest Mode = iota
	Authenticated
)

// Context exposes the session tokens to the services and the API client.
// The services only ever read it; the login and logout flows mutate it.
type Context struct {
	store *localstore.Store
}

// New wraps the given local store.
func New(store *localstore.Store) *Context {
	return &Context{store: store}
}

// Mode recomputes the store mode from token presence. Never cached.
func (c *Context) Mode() Mode {
	if c.Authenticated() {
		return Authenticated
	}
	return Guest
}

// Authenticated reports whether a non-empty access token is present.
func (c *Context) Authenticated() bool {
	return strings.TrimSpace(c.AccessToken()) != ""
}

// AccessToken returns the current access token, or "" in guest mode.
func (c *Context) AccessToken() string {
	return c.store.Get(accessTokenKey)
}

// RefreshToken returns the current refresh token, or "".
func (c *Context) RefreshToken() string {
	return c.store.Get(refreshTokenKey)
}

// SetTokens stores a fresh token pair after login or refresh. An empty
// refresh token leaves the stored one untouched, matching the refresh
// endpoint which rotates only the access token.
func (c *Context) SetTokens(access, refresh string) {
	c.store.Set(accessTokenKey, access)
	if refresh != "" {
		c.store.Set(refreshTokenKey, refresh)
	}
}

// Clear drops both tokens, returning the session to guest mode.
func (c *Context) Clear() {
	c.store.Delete(accessTokenKey)
	c.store.Delete(refreshTokenKey)
}

// Claims is the subset of access-token claims the UI cares about. The token
// is decoded without signature verification; it is only ever used for
// display, never for an authorization decision.
type Claims struct {
	UserID    int64
	Username  string
	ExpiresAt time.Time
}

// Claims decodes the current access token. Returns the zero value when no
// token is present or it does not parse as a JWT.
func (c *Context) Claims() Claims {
	raw := c.AccessToken()
	if raw == "" {
		return Claims{}
	}
	var claims jwt.MapClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return Claims{}
	}

	out := Claims{}
	if v, ok := claims["user_id"].(float64); ok {
		out.UserID = int64(v)
	}
	if v, ok := claims["username"].(string); ok {
		out.Username = v
	}
	if v, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(v), 0)
	}
	return out
}
