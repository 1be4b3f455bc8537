package denylist

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "rtd"

// Redis is a Store backed by a Redis instance. Entries carry a TTL equal
// to the remaining lifetime of the revoked token, so the set cleans
// itself up.
type Redis struct {
	client *redis.Client
	prefix string
}

var _ Store = (*Redis)(nil)

func NewRedis(client *redis.Client) *Redis {
	return &Redis{
		client: client,
		prefix: revokedKeyPrefix,
	}
}

func (s *Redis) key(tokenID string) string {
	return s.prefix + ":" + tokenID
}

func (s *Redis) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired; nothing to deny.
		return nil
	}
	if err := s.client.Set(ctx, s.key(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("denylist redis set: %w", err)
	}
	return nil
}

func (s *Redis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist redis exists: %w", err)
	}
	return n > 0, nil
}
