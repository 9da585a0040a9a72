package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/domain"
	conversionactivities "github.com/Apurer/go-gin-shop-api/internal/platform/temporal/activities/conversions"
)

// ReportRetryPolicy bounds delivery attempts against the Data API.
var ReportRetryPolicy = &temporal.RetryPolicy{
	InitialInterval:    2 * time.Second,
	BackoffCoefficient: 2.0,
	MaximumInterval:    time.Minute,
	MaximumAttempts:    8,
}

// RunConversionReportSequence executes the report activity with retries.
func RunConversionReportSequence(ctx workflow.Context, conversion domain.Conversion) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("conversion report sequence started", "orderId", conversion.OrderID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy:         ReportRetryPolicy,
	}
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), conversionactivities.ReportConversionActivityName, conversion).Get(ctx, nil)
	if err != nil {
		logger.Error("conversion report sequence failed", "orderId", conversion.OrderID, "error", err)
		return err
	}
	logger.Info("conversion report sequence completed", "orderId", conversion.OrderID)
	return nil
}
