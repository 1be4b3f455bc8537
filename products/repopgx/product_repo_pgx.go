package repopgx

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "github.com/stockd/stockd/internal/errors"
	"github.com/stockd/stockd/products"
)

var _ products.Repo = (*PgxProductRepo)(nil)

// PgxProductRepo implements products.Repo using pgxpool.
//
// Expected schema:
//
//	CREATE TABLE products (
//	    id            UUID PRIMARY KEY,
//	    name          TEXT NOT NULL,
//	    description   TEXT NOT NULL DEFAULT '',
//	    price         NUMERIC(10,2) NOT NULL,
//	    quantity      INTEGER NOT NULL DEFAULT 0,
//	    creator_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
//	    creator_email TEXT NOT NULL,
//	    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PgxProductRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *PgxProductRepo {
	return &PgxProductRepo{pool: pool}
}

func (r *PgxProductRepo) Create(ctx context.Context, product *products.Product) error {
	query := `INSERT INTO products (id, name, description, price, quantity, creator_id, creator_email, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.Quantity,
		product.CreatorID, product.CreatorEmail, product.CreatedAt, product.UpdatedAt,
	)
	return err
}

func (r *PgxProductRepo) Get(ctx context.Context, id string) (*products.Product, error) {
	query := `SELECT id, name, description, price::text, quantity, creator_id, creator_email, created_at, updated_at
	          FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PgxProductRepo) List(ctx context.Context) ([]*products.Product, error) {
	query := `SELECT id, name, description, price::text, quantity, creator_id, creator_email, created_at, updated_at
	          FROM products ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*products.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PgxProductRepo) Update(ctx context.Context, product *products.Product) error {
	query := `UPDATE products
	          SET name = $2, description = $3, price = $4, quantity = $5, updated_at = $6
	          WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.Quantity,
		product.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProductNotFound
	}
	return nil
}

func (r *PgxProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProductNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*products.Product, error) {
	var p products.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity,
		&p.CreatorID, &p.CreatorEmail, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
