package ports

import (
	"context"

	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/domain"
)

// Reporter delivers one conversion to the experimentation backend.
type Reporter interface {
	Report(ctx context.Context, conversion domain.Conversion) error
}

// Dispatcher schedules conversions for best-effort delivery without blocking
// the caller. Dispatch reports whether the conversion was accepted.
type Dispatcher interface {
	Dispatch(ctx context.Context, conversion domain.Conversion) bool
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, conversion domain.Conversion) error

func (f ReporterFunc) Report(ctx context.Context, conversion domain.Conversion) error {
	return f(ctx, conversion)
}
