package workflows

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/ports"
	conversionworkflows "github.com/Apurer/go-gin-shop-api/internal/platform/temporal/workflows/conversions"
)

var _ ports.Reporter = (*TemporalReporter)(nil)

// WorkflowStarter is the part of client.Client used to start workflows.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// TemporalReporter hands conversions to the Temporal worker. Report returns
// once the workflow is accepted; delivery happens on the worker.
type TemporalReporter struct {
	client    WorkflowStarter
	taskQueue string
	logger    *slog.Logger
}

type Option func(*TemporalReporter)

func WithLogger(logger *slog.Logger) Option {
	return func(r *TemporalReporter) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewTemporalReporter(c WorkflowStarter, opts ...Option) (*TemporalReporter, error) {
	if c == nil {
		return nil, errors.New("temporal client is nil")
	}
	r := &TemporalReporter{
		client:    c,
		taskQueue: conversionworkflows.ReportTaskQueue,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *TemporalReporter) Report(ctx context.Context, conversion domain.Conversion) error {
	if err := conversion.Validate(); err != nil {
		return err
	}
	workflowID := WorkflowID(conversion)
	options := client.StartWorkflowOptions{
		ID:                    workflowID,
		TaskQueue:             r.taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}
	_, err := r.client.ExecuteWorkflow(
		ctx,
		options,
		conversionworkflows.ReportWorkflowName,
		conversionworkflows.ReportWorkflowInput{Conversion: conversion, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			r.logger.InfoContext(ctx, "conversion workflow already started", slog.String("workflow.id", workflowID))
			return nil
		}
		return fmt.Errorf("start conversion workflow %s: %w", workflowID, err)
	}
	return nil
}

// WorkflowID is stable per checkout so a repeated report is a no-op. Two
// checkouts in the same millisecond share an order id but not a user or
// visitor, so both parts are included.
func WorkflowID(conversion domain.Conversion) string {
	parts := []string{"conversion", strings.TrimSpace(conversion.OrderID)}
	if userID := strings.TrimSpace(conversion.UserID); userID != "" {
		parts = append(parts, url.PathEscape(userID))
	}
	parts = append(parts, strings.TrimSpace(conversion.VisitorCode))
	return strings.Join(parts, "-")
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
