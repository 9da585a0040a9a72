package ports

import (
	"context"

	"github.com/Apurer/go-gin-shop-api/internal/domains/cart/domain"
)

// Service exposes cart use cases to adapters.
type Service interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID string, productID int64, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID string, productID int64) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, userID string, productID int64, quantity int) (*domain.Cart, error)
}
