package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/tokenstore"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	return NewJWTService("test-secret-key", 15*time.Minute, 24*time.Hour, false, tokenstore.NewMemoryStore())
}

func TestGenerateAccessToken(t *testing.T) {
	svc := newTestService()
	employeeID := "emp-1"

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "a@example.com", &employeeID, user.RoleEmployee)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims := parsed.PrivateClaims()
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "a@example.com", claims["email"])
	assert.Equal(t, "emp-1", claims["employee_id"])
	assert.Equal(t, "employee", claims["role"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestParseRefreshToken(t *testing.T) {
	svc := newTestService()

	t.Run("valid refresh token", func(t *testing.T) {
		token, _, err := svc.GenerateRefreshToken("user-1")
		require.NoError(t, err)

		userID, exp, err := svc.ParseRefreshToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
		assert.True(t, exp.After(time.Now()))
	})

	t.Run("access token is rejected", func(t *testing.T) {
		token, _, err := svc.GenerateAccessToken("user-1", "a@example.com", nil, user.RoleAdmin)
		require.NoError(t, err)

		_, _, err = svc.ParseRefreshToken(token)
		assert.Error(t, err)
	})

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		other := NewJWTService("other-key", time.Minute, time.Hour, false, tokenstore.NewMemoryStore())
		token, _, err := other.GenerateRefreshToken("user-1")
		require.NoError(t, err)

		_, _, err = svc.ParseRefreshToken(token)
		assert.Error(t, err)
	})
}

func TestRevokeToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "a@example.com", nil, user.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, svc.IsTokenRevoked(ctx, token))

	require.NoError(t, svc.RevokeToken(ctx, token, time.Unix(expiresAt, 0)))
	assert.True(t, svc.IsTokenRevoked(ctx, token))
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := newTestService()
	cookie := svc.RefreshTokenCookie("abc", time.Now().Add(time.Hour).Unix())

	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)
}
