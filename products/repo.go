package products

import "context"

// Repo defines the data-access contract for products.
type Repo interface {
	// Create inserts a new product. ID and timestamps must already be set.
	Create(ctx context.Context, product *Product) error

	// Get returns the product with the given ID.
	Get(ctx context.Context, id string) (*Product, error)

	// List returns all products, newest first.
	List(ctx context.Context) ([]*Product, error)

	// Update replaces the stored product with the given one.
	Update(ctx context.Context, product *Product) error

	// Delete removes the product with the given ID.
	Delete(ctx context.Context, id string) error
}
