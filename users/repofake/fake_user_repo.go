package repofake

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	apperrors "github.com/stockd/stockd/internal/errors"
	"github.com/stockd/stockd/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

// FakeUserRepo is an in-memory implementation of users.UserRepo used in
// tests and in development mode.
type FakeUserRepo struct {
	lock  sync.RWMutex
	byID  map[string]*users.User
	email map[string]string // lowercased email -> userID
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		byID:  make(map[string]*users.User),
		email: make(map[string]string),
	}
}

func (r *FakeUserRepo) Create(_ context.Context, user *users.User) error {
	if user.ID == "" {
		return errors.New("user ID is required")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	key := strings.ToLower(user.Email)
	if _, ok := r.email[key]; ok {
		return apperrors.ErrUserExists
	}

	cp := *user
	r.byID[user.ID] = &cp
	r.email[key] = user.ID
	return nil
}

func (r *FakeUserRepo) Get(_ context.Context, id string) (*users.User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *FakeUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	id, ok := r.email[strings.ToLower(email)]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *FakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	_, ok := r.email[strings.ToLower(email)]
	return ok, nil
}

func (r *FakeUserRepo) UpdateLastLogin(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.LastLogin = time.Now()
	return nil
}
