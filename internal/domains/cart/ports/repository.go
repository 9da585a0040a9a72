package ports

import (
	"context"

	"github.com/Apurer/go-gin-shop-api/internal/domains/cart/domain"
)

// MutateFunc edits a working copy of a cart. Returning an error discards the edit.
type MutateFunc func(cart *domain.Cart) error

// Repository stores carts by user id. Implementations serialize Update calls
// for the same user so read-modify-write sequences cannot interleave.
type Repository interface {
	// Get returns a copy of the user's cart or an empty cart. It never
	// registers a cart for the user.
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	// Update applies mutate under the user's lock and stores the result.
	Update(ctx context.Context, userID string, mutate MutateFunc) (*domain.Cart, error)
}
