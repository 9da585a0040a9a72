package conversions

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/domain"
	"github.com/Apurer/go-gin-shop-api/internal/platform/temporal/sequences"
)

const (
	// ReportWorkflowName is the public identifier for registering the workflow.
	ReportWorkflowName = "conversions.workflows.Report"
	// ReportTaskQueue is the queue consumed by the conversion worker.
	ReportTaskQueue = "CONVERSIONS"
)

// ReportWorkflowInput carries the conversion and the caller's trace id.
type ReportWorkflowInput struct {
	Conversion domain.Conversion
	TraceID    string
}

// ReportWorkflow delivers a conversion durably.
func ReportWorkflow(ctx workflow.Context, input ReportWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	orderID := input.Conversion.OrderID
	logger.Info("ReportWorkflow started", withTraceID(input.TraceID, "orderId", orderID)...)
	if err := sequences.RunConversionReportSequence(ctx, input.Conversion); err != nil {
		logger.Error("ReportWorkflow failed", withTraceID(input.TraceID, "orderId", orderID, "error", err)...)
		return err
	}
	logger.Info("ReportWorkflow completed", withTraceID(input.TraceID, "orderId", orderID)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
