//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-shop-api/internal/platform/migrations"
)

func setupCatalogPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("shop_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestRepository_UpsertAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.DefaultProducts()))

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 6)
	for i, product := range products {
		assert.Equal(t, int64(i+1), product.ID)
	}
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("99.99")))
	assert.Equal(t, "Electronics", products[0].Category)
}

func TestRepository_UpsertRefreshesExistingRows(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.DefaultProducts()))

	updated := domain.DefaultProducts()[:1]
	updated[0].Price = decimal.RequireFromString("89.50")
	updated[0].Name = "Wireless Headphones v2"
	require.NoError(t, repo.Upsert(ctx, updated))

	product, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Wireless Headphones v2", product.Name)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("89.50")))

	products, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 6)
}

func TestRepository_GetByIDNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	_, err := NewRepository(db).GetByID(context.Background(), 404)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
