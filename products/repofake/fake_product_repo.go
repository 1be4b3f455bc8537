package repofake

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	apperrors "github.com/stockd/stockd/internal/errors"
	"github.com/stockd/stockd/products"
)

var _ products.Repo = (*FakeProductRepo)(nil)

// FakeProductRepo is an in-memory implementation of products.Repo used in
// tests and in development mode.
type FakeProductRepo struct {
	lock sync.RWMutex
	byID map[string]*products.Product
}

func NewFakeProductRepo() *FakeProductRepo {
	return &FakeProductRepo{
		byID: make(map[string]*products.Product),
	}
}

func (r *FakeProductRepo) Create(_ context.Context, product *products.Product) error {
	if product.ID == "" {
		return errors.New("product ID is required")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	cp := *product
	r.byID[product.ID] = &cp
	return nil
}

func (r *FakeProductRepo) Get(_ context.Context, id string) (*products.Product, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	product, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrProductNotFound
	}
	cp := *product
	return &cp, nil
}

func (r *FakeProductRepo) List(_ context.Context) ([]*products.Product, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	list := make([]*products.Product, 0, len(r.byID))
	for _, p := range r.byID {
		cp := *p
		list = append(list, &cp)
	}

	// Newest first, matching the API listing order
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *FakeProductRepo) Update(_ context.Context, product *products.Product) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.byID[product.ID]; !ok {
		return apperrors.ErrProductNotFound
	}
	cp := *product
	r.byID[product.ID] = &cp
	return nil
}

func (r *FakeProductRepo) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.byID[id]; !ok {
		return apperrors.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}
