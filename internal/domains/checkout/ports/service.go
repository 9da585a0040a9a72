package ports

import (
	"context"

	catalogdomain "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/checkout/domain"
)

// Service exposes checkout to adapters. visitorCode may be empty, in which
// case no conversion is reported.
type Service interface {
	Checkout(ctx context.Context, userID, visitorCode string) (*domain.Order, error)
}

// ProductLookup resolves products for pricing. It returns the catalog's
// ErrNotFound for unknown ids.
type ProductLookup interface {
	GetProduct(ctx context.Context, id int64) (*catalogdomain.Product, error)
}
