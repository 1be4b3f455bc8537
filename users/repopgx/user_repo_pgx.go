package repopgx

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "github.com/stockd/stockd/internal/errors"
	"github.com/stockd/stockd/users"
)

var _ users.UserRepo = (*PgxUserRepo)(nil)

// PgxUserRepo implements users.UserRepo using pgxpool.
//
// Expected schema:
//
//	CREATE TABLE users (
//	    id            UUID PRIMARY KEY,
//	    email         TEXT NOT NULL UNIQUE,
//	    password_hash TEXT NOT NULL,
//	    first_name    TEXT NOT NULL DEFAULT '',
//	    last_name     TEXT NOT NULL DEFAULT '',
//	    phone_number  TEXT NOT NULL DEFAULT '',
//	    address       TEXT NOT NULL DEFAULT '',
//	    date_joined   TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    last_login    TIMESTAMPTZ
//	);
type PgxUserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *PgxUserRepo {
	return &PgxUserRepo{pool: pool}
}

func (r *PgxUserRepo) Create(ctx context.Context, user *users.User) error {
	query := `INSERT INTO users (id, email, password_hash, first_name, last_name, phone_number, address, date_joined)
	          VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.PhoneNumber, user.Address,
		user.DateJoined,
	)
	return err
}

func (r *PgxUserRepo) Get(ctx context.Context, id string) (*users.User, error) {
	query := `SELECT id, email, password_hash, first_name, last_name, phone_number, address, date_joined
	          FROM users WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *PgxUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	query := `SELECT id, email, password_hash, first_name, last_name, phone_number, address, date_joined
	          FROM users WHERE email = lower($1)`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *PgxUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = lower($1))`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgxUserRepo) UpdateLastLogin(ctx context.Context, id string) error {
	query := `UPDATE users SET last_login = CURRENT_TIMESTAMP WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *PgxUserRepo) scanOne(row pgx.Row) (*users.User, error) {
	var u users.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.PhoneNumber, &u.Address,
		&u.DateJoined,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
