// Package postgres opens the GORM connection shared by the catalog snapshot
// loader and the catalog seeder.
package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	pingTimeout     = 5 * time.Second
	maxOpenConns    = 4
	connMaxIdleTime = 5 * time.Minute
)

// ErrEmptyDSN is returned by Connect for a blank DSN.
var ErrEmptyDSN = errors.New("postgres DSN is empty")

// Connect opens a small pool, translating driver errors into GORM's sentinel
// errors, and pings before returning.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrEmptyDSN
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectOptional returns nil and a no-op cleanup when dsn is blank or the
// database cannot be reached; callers fall back to the built-in catalog.
func ConnectOptional(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, func()) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	db, err := Connect(ctx, dsn)
	switch {
	case errors.Is(err, ErrEmptyDSN):
		logger.Warn("POSTGRES_DSN not set, postgres disabled")
		return nil, func() {}
	case err != nil:
		logger.Warn("failed to connect to postgres", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("postgres connection established")
	return db, func() { _ = sqlDB.Close() }
}
