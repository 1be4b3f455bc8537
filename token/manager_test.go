package token_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/stockd/stockd/internal/errors"
	"github.com/stockd/stockd/token"
	"github.com/stockd/stockd/token/denylist"
)

type testAuthConfig struct {
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func (c testAuthConfig) GetTokenSecret() []byte              { return []byte("test-secret") }
func (c testAuthConfig) GetAccessTokenExpiry() time.Duration { return c.accessExpiry }
func (c testAuthConfig) GetRefreshTokenExpiry() time.Duration {
	return c.refreshExpiry
}
func (c testAuthConfig) GetSecureCookies() bool { return false }

func newTestManager() *token.Manager {
	return token.NewManager(testAuthConfig{
		accessExpiry:  5 * time.Minute,
		refreshExpiry: 7 * 24 * time.Hour,
	}, denylist.NewInMemory())
}

func TestManager_AccessToken(t *testing.T) {
	m := newTestManager()

	t.Run("round trip", func(t *testing.T) {
		signed, err := m.CreateAccessToken("u1")
		require.NoError(t, err)

		claims, err := m.ParseAccessToken(signed)
		require.NoError(t, err)
		require.Equal(t, "u1", claims.UserID)
		require.Equal(t, token.TypeAccess, claims.Type)
		require.NotEmpty(t, claims.TokenID)
		require.WithinDuration(t, time.Now().Add(5*time.Minute), claims.ExpiresAt, 5*time.Second)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := m.ParseAccessToken("not-a-jwt")
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("tampered signature rejected", func(t *testing.T) {
		signed, err := m.CreateAccessToken("u1")
		require.NoError(t, err)

		_, err = m.ParseAccessToken(signed + "xx")
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		signed, err := m.CreateRefreshToken("u1")
		require.NoError(t, err)

		_, err = m.ParseAccessToken(signed)
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

func TestManager_Expiry(t *testing.T) {
	m := newTestManager()
	defer func() { token.NowTimeFunc = time.Now }()

	token.NowTimeFunc = func() time.Time { return time.Now().Add(-10 * time.Minute) }
	signed, err := m.CreateAccessToken("u1")
	require.NoError(t, err)

	token.NowTimeFunc = time.Now
	_, err = m.ParseAccessToken(signed)
	require.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestManager_RefreshRevocation(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	signed, err := m.CreateRefreshToken("u1")
	require.NoError(t, err)

	claims, err := m.ParseRefreshToken(ctx, signed)
	require.NoError(t, err)
	require.Equal(t, token.TypeRefresh, claims.Type)

	require.NoError(t, m.RevokeRefreshToken(ctx, signed))

	_, err = m.ParseRefreshToken(ctx, signed)
	require.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	t.Run("revoking garbage is a no-op", func(t *testing.T) {
		require.NoError(t, m.RevokeRefreshToken(ctx, "not-a-jwt"))
	})

	t.Run("other tokens stay valid", func(t *testing.T) {
		other, err := m.CreateRefreshToken("u1")
		require.NoError(t, err)
		_, err = m.ParseRefreshToken(ctx, other)
		require.NoError(t, err)
	})
}
