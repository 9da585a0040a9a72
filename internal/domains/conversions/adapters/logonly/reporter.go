// Package logonly reports conversions to the log only.
package logonly

import (
	"context"
	"io"
	"log/slog"

	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/ports"
)

var _ ports.Reporter = (*Reporter)(nil)

type Reporter struct {
	logger *slog.Logger
}

func NewReporter(logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Reporter{logger: logger}
}

func (r *Reporter) Report(ctx context.Context, conversion domain.Conversion) error {
	if err := conversion.Validate(); err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "conversion recorded",
		slog.String("conversion.order_id", conversion.OrderID),
		slog.String("conversion.visitor_code", conversion.VisitorCode),
		slog.Int64("conversion.goal_id", conversion.GoalID),
		slog.String("conversion.revenue", conversion.Revenue.StringFixed(2)),
	)
	return nil
}
