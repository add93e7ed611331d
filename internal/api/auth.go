package api

import (
	"context"
	"net/http"
)

// Tokens is the pair returned by the login endpoint.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// User mirrors the profile endpoint payload.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff"`
}

// Login exchanges credentials for a token pair. Storing the tokens is the
// caller's job; the client never mutates the session on its own during login.
func (c *Client) Login(ctx context.Context, username, password string) (Tokens, error) {
	body := map[string]string{"username": username, "password": password}
	var tokens Tokens
	if err := c.do(ctx, http.MethodPost, c.endpoint("auth", "login"), body, &tokens, "Login failed"); err != nil {
		return Tokens{}, err
	}
	return tokens, nil
}

// RegisterInput carries the new-account form fields.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	return c.do(ctx, http.MethodPost, c.endpoint("auth", "register"), in, nil, "Registration failed")
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, c.endpoint("users", "profile"), nil, &user, "Failed to load profile"); err != nil {
		return User{}, err
	}
	return user, nil
}

// refreshAccess rotates the access token using the stored refresh token.
// Issued at most once per request from do's 401 path; uses roundTrip directly
// so a failing refresh can never recurse.
func (c *Client) refreshAccess(ctx context.Context) error {
	refresh := c.refreshToken()
	if refresh == "" {
		return &Error{Message: "no refresh token"}
	}
	body := map[string]string{"refresh": refresh}
	status, data, err := c.roundTrip(ctx, http.MethodPost, c.endpoint("auth", "refresh"), body, "")
	if err != nil {
		return &Error{Message: transportMessage(err, "Failed to refresh session")}
	}
	if status >= 400 {
		return &Error{Status: status, Message: extractMessage(data, "Failed to refresh session")}
	}
	var tokens Tokens
	if err := decodeInto(data, &tokens); err != nil {
		return err
	}
	if tokens.Access == "" {
		return &Error{Message: "refresh returned no access token"}
	}
	c.tokens.SetTokens(tokens.Access, tokens.Refresh)
	return nil
}
