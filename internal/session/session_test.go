package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekinsoft/vitrin/internal/localstore"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	return New(localstore.Open(t.TempDir()))
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestMode_FollowsTokenPresence(t *testing.T) {
	c := newTestContext(t)

	assert.Equal(t, Guest, c.Mode())
	assert.False(t, c.Authenticated())

	c.SetTokens("some-access-token", "some-refresh-token")
	assert.Equal(t, Authenticated, c.Mode())
	assert.True(t, c.Authenticated())

	c.Clear()
	assert.Equal(t, Guest, c.Mode())
	assert.Empty(t, c.AccessToken())
	assert.Empty(t, c.RefreshToken())
}

func TestAuthenticated_IgnoresWhitespaceToken(t *testing.T) {
	c := newTestContext(t)
	c.SetTokens("   ", "")
	assert.False(t, c.Authenticated())
}

func TestSetTokens_EmptyRefreshKeepsExisting(t *testing.T) {
	c := newTestContext(t)

	c.SetTokens("access-1", "refresh-1")
	c.SetTokens("access-2", "")

	assert.Equal(t, "access-2", c.AccessToken())
	assert.Equal(t, "refresh-1", c.RefreshToken())
}

func TestClaims_DecodesDisplayFields(t *testing.T) {
	c := newTestContext(t)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	c.SetTokens(signedToken(t, jwt.MapClaims{
		"user_id":  float64(42),
		"username": "mehmet",
		"exp":      exp.Unix(),
	}), "")

	claims := c.Claims()
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "mehmet", claims.Username)
	assert.True(t, claims.ExpiresAt.Equal(exp))
}

func TestClaims_MalformedTokenIsZero(t *testing.T) {
	c := newTestContext(t)
	c.SetTokens("not-a-jwt", "")
	assert.Equal(t, Claims{}, c.Claims())
}

func TestClaims_NoTokenIsZero(t *testing.T) {
	c := newTestContext(t)
	assert.Equal(t, Claims{}, c.Claims())
}
