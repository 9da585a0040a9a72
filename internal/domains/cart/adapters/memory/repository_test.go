package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/Apurer/go-gin-shop-api/internal/domains/cart/domain"
)

func addOne(productID int64) func(*domain.Cart) error {
	return func(c *domain.Cart) error { return c.Add(productID, 1) }
}

func TestGet_DoesNotRegisterCart(t *testing.T) {
	repo := NewRepository()

	cart, err := repo.Get(context.Background(), "alice")
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
	require.Equal(t, "alice", cart.UserID)
	require.Zero(t, repo.Users())
}

func TestGet_RejectsBlankUser(t *testing.T) {
	_, err := NewRepository().Get(context.Background(), " ")
	require.ErrorIs(t, err, domain.ErrInvalidUserID)
}

func TestUpdate_RegistersOnFirstNonEmptyResult(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.Update(ctx, "alice", func(c *domain.Cart) error {
		c.Remove(1)
		return nil
	})
	require.NoError(t, err)
	require.Zero(t, repo.Users())

	saved, err := repo.Update(ctx, "alice", addOne(1))
	require.NoError(t, err)
	require.Equal(t, []domain.LineItem{{ProductID: 1, Quantity: 1}}, saved.Items)
	require.Equal(t, 1, repo.Users())

	cleared, err := repo.Update(ctx, "alice", func(c *domain.Cart) error {
		c.Clear()
		return nil
	})
	require.NoError(t, err)
	require.True(t, cleared.IsEmpty())
	require.Equal(t, 1, repo.Users(), "emptied carts stay registered")
}

func TestUpdate_FailedMutationDiscardsEdits(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := repo.Update(ctx, "alice", addOne(1))
	require.NoError(t, err)

	_, err = repo.Update(ctx, "alice", func(c *domain.Cart) error {
		c.Clear()
		return boom
	})
	require.ErrorIs(t, err, boom)

	cart, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	_, err = repo.Update(ctx, "bob", func(*domain.Cart) error { return boom })
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, repo.Users())
}

func TestUpdate_ReturnsDetachedCopies(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	saved, err := repo.Update(ctx, "alice", addOne(1))
	require.NoError(t, err)
	saved.Items[0].Quantity = 50

	cart, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, 1, cart.Items[0].Quantity)
}

func TestUpdate_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRepository().Update(ctx, "alice", addOne(1))
	require.ErrorIs(t, err, context.Canceled)
}

func TestUpdate_ConcurrentAddsForSameUserAreNotLost(t *testing.T) {
	repo := NewRepository()
	g, ctx := errgroup.WithContext(context.Background())

	const workers = 64
	const perWorker = 25
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for j := 0; j < perWorker; j++ {
				if _, err := repo.Update(ctx, "alice", addOne(1)); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	cart, err := repo.Get(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, []domain.LineItem{{ProductID: 1, Quantity: workers * perWorker}}, cart.Items)
}

func TestUpdate_ConcurrentUsersAndFailedCreations(t *testing.T) {
	repo := NewRepository()
	g, ctx := errgroup.WithContext(context.Background())
	boom := errors.New("boom")

	for i := 0; i < 32; i++ {
		user := fmt.Sprintf("user-%d", i%4)
		fail := i%2 == 0
		g.Go(func() error {
			if fail {
				_, err := repo.Update(ctx, user, func(*domain.Cart) error { return boom })
				if !errors.Is(err, boom) {
					return fmt.Errorf("expected boom, got %v", err)
				}
				return nil
			}
			_, err := repo.Update(ctx, user, addOne(7))
			return err
		})
	}
	require.NoError(t, g.Wait())

	total := 0
	for i := 0; i < 4; i++ {
		cart, err := repo.Get(context.Background(), fmt.Sprintf("user-%d", i))
		require.NoError(t, err)
		for _, item := range cart.Items {
			total += item.Quantity
		}
	}
	require.Equal(t, 16, total)
}
