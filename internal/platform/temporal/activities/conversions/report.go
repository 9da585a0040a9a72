package conversions

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/ports"
)

const (
	// ReportConversionActivityName delivers one conversion to the Data API.
	ReportConversionActivityName = "conversions.activities.Report"

	nonRetryableType = "ConversionRejected"
)

// Activities wraps a synchronous reporter for the worker.
type Activities struct {
	reporter ports.Reporter
}

func NewActivities(reporter ports.Reporter) *Activities {
	return &Activities{reporter: reporter}
}

// temporaryError is implemented by transport errors that know whether a
// retry can succeed.
type temporaryError interface {
	Temporary() bool
}

// ReportConversion forwards the conversion. Invalid conversions and
// permanent transport failures are not retried.
func (a *Activities) ReportConversion(ctx context.Context, conversion domain.Conversion) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.reporter == nil {
		logger.Error("conversion report activity not initialized", "orderId", conversion.OrderID)
		return errors.New("conversion report activity not initialized")
	}
	if err := conversion.Validate(); err != nil {
		logger.Error("ReportConversion rejected", "orderId", conversion.OrderID, "error", err)
		return temporal.NewNonRetryableApplicationError(err.Error(), nonRetryableType, err)
	}
	info := activity.GetInfo(ctx)
	logger.Info("ReportConversion activity started", "orderId", conversion.OrderID, "attempt", info.Attempt)
	if err := a.reporter.Report(ctx, conversion); err != nil {
		var tmp temporaryError
		if errors.As(err, &tmp) && !tmp.Temporary() {
			logger.Error("ReportConversion failed permanently", "orderId", conversion.OrderID, "error", err)
			return temporal.NewNonRetryableApplicationError(err.Error(), nonRetryableType, err)
		}
		logger.Warn("ReportConversion failed", "orderId", conversion.OrderID, "error", err)
		return err
	}
	logger.Info("ReportConversion activity completed", "orderId", conversion.OrderID)
	return nil
}
