package ports

import (
	"context"

	"github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
)

// Service exposes catalog queries to adapters.
type Service interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	ProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	SearchProducts(ctx context.Context, query string) ([]*domain.Product, error)
}
