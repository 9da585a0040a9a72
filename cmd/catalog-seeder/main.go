package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	catalogpostgres "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-shop-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading configuration from the environment")
	}
	if err := run(context.Background(), os.Getenv("POSTGRES_DSN")); err != nil {
		log.Fatalf("catalog seeding failed: %v", err)
	}
}

func run(ctx context.Context, dsn string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectOptional(ctx, dsn, logger)
	defer cleanup()
	if db == nil {
		return errors.New("POSTGRES_DSN not set or connection failed")
	}

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("migrate catalog schema: %w", err)
	}
	products := catalogdomain.DefaultProducts()
	if err := catalogpostgres.NewRepository(db).Upsert(ctx, products); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	logger.Info("catalog seeded", slog.Int("products", len(products)))
	return nil
}
