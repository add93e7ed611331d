package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource supplies the bearer credentials attached to authenticated
// requests. Implemented by *session.Context; the client only reads the access
// token per request and writes back a rotated one after a refresh.
type TokenSource interface {
	AccessToken() string
	RefreshToken() string
	SetTokens(access, refresh string)
}

// Client talks to the storefront REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	tokens    TokenSource
}

const (
	defaultBaseURL   = "http://127.0.0.1:8000/api"
	defaultUserAgent = "vitrin/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base URL, e.g.
// "https://shop.example.com/api". The scheme defaults to http when absent.
func NewClient(baseURL string, tokens TokenSource) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		tokens:    tokens,
	}, nil
}

// endpoint joins path elements onto the base URL. Every API route carries a
// trailing slash; the server redirects without it and redirects drop bodies.
func (c *Client) endpoint(parts ...string) *url.URL {
	u := c.baseURL.JoinPath(parts...)
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u
}

// do issues a request and decodes the JSON response into dest (which may be
// nil for empty responses). On a 401 it refreshes the access token once and
// retries. All failures come back as *Error with a message per the fallback
// extraction order.
func (c *Client) do(ctx context.Context, method string, u *url.URL, body any, dest any, fallback string) error {
	status, data, err := c.roundTrip(ctx, method, u, body, c.accessToken())
	if err != nil {
		return &Error{Message: transportMessage(err, fallback)}
	}

	if status == http.StatusUnauthorized && c.refreshToken() != "" {
		if rerr := c.refreshAccess(ctx); rerr == nil {
			status, data, err = c.roundTrip(ctx, method, u, body, c.accessToken())
			if err != nil {
				return &Error{Message: transportMessage(err, fallback)}
			}
		}
	}

	if status >= 400 {
		return &Error{Status: status, Message: extractMessage(data, fallback)}
	}
	if dest == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return &Error{Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method string, u *url.URL, body any, token string) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

func (c *Client) accessToken() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.AccessToken()
}

func (c *Client) refreshToken() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.RefreshToken()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base_url %q: %w", raw, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
