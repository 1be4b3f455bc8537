package users

import "context"

// UserRepo defines the data-access contract for user accounts.
// Handlers and services depend on this interface only — never on SQL
// or pgx directly.
type UserRepo interface {
	// Create inserts a new user. ID and DateJoined must already be set.
	Create(ctx context.Context, user *User) error

	// Get returns the user with the given ID.
	Get(ctx context.Context, id string) (*User, error)

	// GetByEmail returns the user matching the given email address.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail returns true when a user with the given email
	// already exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// UpdateLastLogin sets the last_login timestamp to now for the given user.
	UpdateLastLogin(ctx context.Context, id string) error
}
