// Package denylist tracks revoked refresh-token IDs so a logged-out
// refresh token cannot be replayed before its natural expiry.
package denylist

import (
	"context"
	"sync"
	"time"
)

// Store records revoked refresh-token IDs (jti claims) until they would
// have expired anyway.
type Store interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// InMemory is a process-local Store. Suitable for tests and single-node
// development; production deployments should use the Redis store so
// revocations survive restarts.
type InMemory struct {
	mu      sync.Mutex
	revoked map[string]time.Time // tokenID -> expiry of the revocation entry
}

var _ Store = (*InMemory)(nil)

func NewInMemory() *InMemory {
	return &InMemory{revoked: make(map[string]time.Time)}
}

func (s *InMemory) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = time.Now().Add(ttl)
	return nil
}

func (s *InMemory) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
