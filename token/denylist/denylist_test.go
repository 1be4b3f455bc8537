package denylist_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/stockd/stockd/token/denylist"
)

func TestInMemory(t *testing.T) {
	ctx := context.Background()
	s := denylist.NewInMemory()

	t.Run("unknown token is not revoked", func(t *testing.T) {
		revoked, err := s.IsRevoked(ctx, "t1")
		require.NoError(t, err)
		require.False(t, revoked)
	})

	t.Run("revoked until ttl elapses", func(t *testing.T) {
		require.NoError(t, s.Revoke(ctx, "t2", time.Hour))
		revoked, err := s.IsRevoked(ctx, "t2")
		require.NoError(t, err)
		require.True(t, revoked)
	})

	t.Run("entry expires with the token", func(t *testing.T) {
		require.NoError(t, s.Revoke(ctx, "t3", -time.Second))
		revoked, err := s.IsRevoked(ctx, "t3")
		require.NoError(t, err)
		require.False(t, revoked)
	})
}

func TestRedis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	s := denylist.NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	t.Run("unknown token is not revoked", func(t *testing.T) {
		revoked, err := s.IsRevoked(ctx, "t1")
		require.NoError(t, err)
		require.False(t, revoked)
	})

	t.Run("revoked until ttl elapses", func(t *testing.T) {
		require.NoError(t, s.Revoke(ctx, "t2", time.Hour))
		revoked, err := s.IsRevoked(ctx, "t2")
		require.NoError(t, err)
		require.True(t, revoked)

		mr.FastForward(2 * time.Hour)
		revoked, err = s.IsRevoked(ctx, "t2")
		require.NoError(t, err)
		require.False(t, revoked)
	})

	t.Run("expired token is never stored", func(t *testing.T) {
		require.NoError(t, s.Revoke(ctx, "t3", -time.Second))
		revoked, err := s.IsRevoked(ctx, "t3")
		require.NoError(t, err)
		require.False(t, revoked)
	})
}
