package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is a read-only in-memory catalog. The snapshot is fixed at
// construction; callers receive clones so the stored products never change.
type Repository struct {
	products []*domain.Product
	byID     map[int64]int
}

// NewRepository builds a catalog from products, preserving their order.
func NewRepository(products []*domain.Product) (*Repository, error) {
	r := &Repository{
		products: make([]*domain.Product, 0, len(products)),
		byID:     make(map[int64]int, len(products)),
	}
	for _, product := range products {
		if product == nil {
			continue
		}
		if err := product.Validate(); err != nil {
			return nil, fmt.Errorf("product %d: %w", product.ID, err)
		}
		if _, dup := r.byID[product.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", product.ID)
		}
		clone := *product
		r.byID[clone.ID] = len(r.products)
		r.products = append(r.products, &clone)
	}
	return r, nil
}

// NewDefaultRepository serves the built-in catalog.
func NewDefaultRepository() *Repository {
	repo, err := NewRepository(domain.DefaultProducts())
	if err != nil {
		panic(err)
	}
	return repo
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		clone := *product
		list = append(list, &clone)
	}
	return list, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.products[idx]
	return &clone, nil
}

// ErrEmptySource is returned by NewSnapshot when the source has no products.
var ErrEmptySource = errors.New("catalog source is empty")

// NewSnapshot copies every product of src into a fresh in-memory catalog.
func NewSnapshot(ctx context.Context, src ports.Repository) (*Repository, error) {
	products, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(products) == 0 {
		return nil, ErrEmptySource
	}
	return NewRepository(products)
}
