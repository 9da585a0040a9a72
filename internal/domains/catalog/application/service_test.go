package application

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shop-api/internal/domains/catalog/adapters/memory"
	"github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/catalog/ports"
)

type failingRepo struct{ err error }

func (f failingRepo) List(context.Context) ([]*domain.Product, error) { return nil, f.err }
func (f failingRepo) GetByID(context.Context, int64) (*domain.Product, error) {
	return nil, f.err
}

func newDefaultService() *Service {
	return NewService(memory.NewDefaultRepository())
}

func TestListProducts_PreservesCatalogOrder(t *testing.T) {
	products, err := newDefaultService().ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 6)
	for i, product := range products {
		require.Equal(t, int64(i+1), product.ID)
	}
}

func TestGetProduct(t *testing.T) {
	svc := newDefaultService()

	product, err := svc.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Wireless Headphones", product.Name)
	require.True(t, product.Price.Equal(decimal.RequireFromString("99.99")))

	for _, id := range []int64{0, -1, 7, 999} {
		_, err := svc.GetProduct(context.Background(), id)
		require.ErrorIs(t, err, ports.ErrNotFound, "id %d", id)
	}
}

func TestCategories_DistinctAndSorted(t *testing.T) {
	categories, err := newDefaultService().Categories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Accessories", "Computing", "Electronics", "Gaming"}, categories)
	require.True(t, slices.IsSorted(categories))
}

func TestCategories_CaseSensitive(t *testing.T) {
	repo, err := memory.NewRepository([]*domain.Product{
		{ID: 1, Name: "a", Category: "gaming"},
		{ID: 2, Name: "b", Category: "Gaming"},
		{ID: 3, Name: "c", Category: "Gaming"},
	})
	require.NoError(t, err)

	categories, err := NewService(repo).Categories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Gaming", "gaming"}, categories)
}

func TestProductsByCategory(t *testing.T) {
	svc := newDefaultService()

	computing, err := svc.ProductsByCategory(context.Background(), "cOmPuTiNg")
	require.NoError(t, err)
	require.Len(t, computing, 2)
	require.Equal(t, int64(3), computing[0].ID)
	require.Equal(t, int64(5), computing[1].ID)

	none, err := svc.ProductsByCategory(context.Background(), "Garden")
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)

	partial, err := svc.ProductsByCategory(context.Background(), "Comp")
	require.NoError(t, err)
	require.Empty(t, partial)
}

func TestSearchProducts_MatchesNameDescriptionOrCategory(t *testing.T) {
	svc := newDefaultService()
	all, err := svc.ListProducts(context.Background())
	require.NoError(t, err)

	for _, query := range []string{"", "smart", "WIRELESS", "gaming", "4k", "accessories", "tablet", "nothing-matches"} {
		result, err := svc.SearchProducts(context.Background(), query)
		require.NoError(t, err)
		require.NotNil(t, result)
		lower := strings.ToLower(query)
		for _, product := range result {
			require.True(t,
				strings.Contains(strings.ToLower(product.Name), lower) ||
					strings.Contains(strings.ToLower(product.Description), lower) ||
					strings.Contains(strings.ToLower(product.Category), lower),
				"query %q matched product %d", query, product.ID)
			require.Contains(t, ids(all), product.ID)
		}
		require.True(t, slices.IsSorted(ids(result)), "query %q kept catalog order", query)
	}

	everything, err := svc.SearchProducts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, everything, len(all))

	smart, err := svc.SearchProducts(context.Background(), "smart")
	require.NoError(t, err)
	require.Equal(t, []int64{2, 4}, ids(smart))

	byCategory, err := svc.SearchProducts(context.Background(), "accessories")
	require.NoError(t, err)
	require.Equal(t, []int64{4}, ids(byCategory))
}

func TestService_PropagatesRepositoryErrors(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(failingRepo{err: boom})

	_, err := svc.Categories(context.Background())
	require.ErrorIs(t, err, boom)
	_, err = svc.SearchProducts(context.Background(), "x")
	require.ErrorIs(t, err, boom)
	_, err = svc.ProductsByCategory(context.Background(), "x")
	require.ErrorIs(t, err, boom)
}

func ids(products []*domain.Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}
