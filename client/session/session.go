// Package session holds the client's view of the authenticated user.
//
// The store is the single writer for session state: every mutation goes
// through its methods, so callers never race on a shared record even when
// several requests discover an expired session at once.
package session

import (
	"sync"

	"github.com/stockd/stockd/users"
)

// Store is a guarded {profile, authenticated} record. The zero value is
// not usable; create one with NewStore.
type Store struct {
	mu            sync.RWMutex
	profile       *users.Profile
	authenticated bool
}

func NewStore() *Store {
	return &Store{}
}

// Set records a verified profile and marks the session authenticated.
func (s *Store) Set(profile users.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &profile
	s.authenticated = true
}

// Clear empties the session. Called on logout, on irrecoverable refresh
// failure, and on failed startup verification.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
	s.authenticated = false
}

// Profile returns a copy of the cached profile, or nil when the session
// is unauthenticated.
func (s *Store) Profile() *users.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	cp := *s.profile
	return &cp
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}
