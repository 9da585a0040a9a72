package application

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shop-api/internal/domains/cart/adapters/memory"
	"github.com/Apurer/go-gin-shop-api/internal/domains/cart/domain"
)

func newTestService() (*Service, *memory.Repository) {
	repo := memory.NewRepository()
	return NewService(repo), repo
}

func TestGetCart_UnknownUserIsEmpty(t *testing.T) {
	svc, repo := newTestService()

	cart, err := svc.GetCart(context.Background(), "nobody")
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Zero(t, repo.Users())
}

func TestAddItem_MergeLaw(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "alice", 1, 2)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "alice", 1, 3)
	require.NoError(t, err)
	require.Equal(t, []domain.LineItem{{ProductID: 1, Quantity: 5}}, cart.Items)
}

func TestAddItem_OverflowIsInvalidInput(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "alice", 1, math.MaxInt)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "alice", 1, 1)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrQuantityOverflow)

	cart, err := svc.GetCart(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, []domain.LineItem{{ProductID: 1, Quantity: math.MaxInt}}, cart.Items)
}

func TestAddItem_DoesNotValidateCatalog(t *testing.T) {
	svc, _ := newTestService()

	cart, err := svc.AddItem(context.Background(), "alice", 4242, 1)
	require.NoError(t, err)
	require.Equal(t, []domain.LineItem{{ProductID: 4242, Quantity: 1}}, cart.Items)
}

func TestAddItem_InvalidInput(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "alice", 1, -2)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.AddItem(ctx, "  ", 1, 1)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidUserID)

	require.Zero(t, repo.Users())
}

func TestRemoveItem_IdempotentAndNoopForUnknownUser(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	cart, err := svc.RemoveItem(ctx, "ghost", 1)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Zero(t, repo.Users())

	_, err = svc.AddItem(ctx, "alice", 1, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "alice", 2, 1)
	require.NoError(t, err)

	once, err := svc.RemoveItem(ctx, "alice", 1)
	require.NoError(t, err)
	twice, err := svc.RemoveItem(ctx, "alice", 1)
	require.NoError(t, err)
	require.Equal(t, once, twice)
	require.Equal(t, []domain.LineItem{{ProductID: 2, Quantity: 1}}, twice.Items)
}

func TestUpdateQuantity(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	cart, err := svc.UpdateQuantity(ctx, "ghost", 1, 5)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Zero(t, repo.Users())

	_, err = svc.AddItem(ctx, "alice", 1, 1)
	require.NoError(t, err)

	cart, err = svc.UpdateQuantity(ctx, "alice", 1, 5)
	require.NoError(t, err)
	require.Equal(t, []domain.LineItem{{ProductID: 1, Quantity: 5}}, cart.Items)

	cart, err = svc.UpdateQuantity(ctx, "alice", 2, 9)
	require.NoError(t, err)
	require.Equal(t, []domain.LineItem{{ProductID: 1, Quantity: 5}}, cart.Items)

	cart, err = svc.UpdateQuantity(ctx, "alice", 1, 0)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}
