package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

// Repository exposes read access to the product catalog.
type Repository interface {
	List(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}
