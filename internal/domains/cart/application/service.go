package application

import (
	"context"

	"github.com/Apurer/go-gin-shop-api/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/cart/ports"
)

// Service orchestrates cart use cases on top of the cart store.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	return cart, mapError(err)
}

// AddItem merges quantity into the line for productID, appending one if needed.
func (s *Service) AddItem(ctx context.Context, userID string, productID int64, quantity int) (*domain.Cart, error) {
	cart, err := s.repo.Update(ctx, userID, func(c *domain.Cart) error {
		return c.Add(productID, quantity)
	})
	return cart, mapError(err)
}

func (s *Service) RemoveItem(ctx context.Context, userID string, productID int64) (*domain.Cart, error) {
	cart, err := s.repo.Update(ctx, userID, func(c *domain.Cart) error {
		c.Remove(productID)
		return nil
	})
	return cart, mapError(err)
}

// UpdateQuantity overwrites an existing line's quantity; zero or less removes it.
func (s *Service) UpdateQuantity(ctx context.Context, userID string, productID int64, quantity int) (*domain.Cart, error) {
	cart, err := s.repo.Update(ctx, userID, func(c *domain.Cart) error {
		c.SetQuantity(productID, quantity)
		return nil
	})
	return cart, mapError(err)
}

var _ ports.Service = (*Service)(nil)
