package application

import (
	"context"
	"slices"

	"github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/catalog/ports"
)

// Service answers catalog queries with linear scans over the repository snapshot.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Categories returns each distinct category once, sorted ascending.
// Comparison is case-sensitive.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(products))
	categories := make([]string, 0, len(products))
	for _, product := range products {
		if _, ok := seen[product.Category]; ok {
			continue
		}
		seen[product.Category] = struct{}{}
		categories = append(categories, product.Category)
	}
	slices.Sort(categories)
	return categories, nil
}

func (s *Service) ProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.filter(ctx, func(p *domain.Product) bool { return p.InCategory(category) })
}

func (s *Service) SearchProducts(ctx context.Context, query string) ([]*domain.Product, error) {
	return s.filter(ctx, func(p *domain.Product) bool { return p.Matches(query) })
}

func (s *Service) filter(ctx context.Context, keep func(*domain.Product) bool) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Product, 0, len(products))
	for _, product := range products {
		if keep(product) {
			result = append(result, product)
		}
	}
	return result, nil
}

var _ ports.Service = (*Service)(nil)
