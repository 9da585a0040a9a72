package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/ports"
)

const (
	tracerName = "github.com/Apurer/go-gin-shop-api/internal/domains/conversions/application/dispatcher"

	DefaultWorkers   = 4
	DefaultQueueSize = 256
	DefaultTimeout   = 5 * time.Second
)

// ErrDispatcherClosed is returned by Close when called twice.
var ErrDispatcherClosed = errors.New("conversion dispatcher closed")

var _ ports.Dispatcher = (*Dispatcher)(nil)

// Dispatcher hands conversions to a Reporter on background workers.
// Delivery failures are logged and counted; they never reach the caller.
type Dispatcher struct {
	reporter ports.Reporter
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  dispatcherMetrics

	workers   int
	queueSize int
	timeout   time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan job
	wg     sync.WaitGroup
}

type job struct {
	ctx        context.Context
	conversion domain.Conversion
}

type Option func(*Dispatcher)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(d *Dispatcher) {
		d.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(d *Dispatcher) {
		d.metrics = newDispatcherMetrics(m)
	}
}

// WithWorkers sets the number of delivery goroutines.
func WithWorkers(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.workers = n
		}
	}
}

// WithQueueSize bounds the number of conversions waiting for a worker.
func WithQueueSize(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.queueSize = n
		}
	}
}

// WithTimeout bounds each Report call.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// NewDispatcher starts the worker pool. Call Close to stop it.
func NewDispatcher(reporter ports.Reporter, opts ...Option) (*Dispatcher, error) {
	if reporter == nil {
		return nil, errors.New("conversion reporter is nil")
	}
	d := &Dispatcher{
		reporter:  reporter,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:    nooptrace.NewTracerProvider().Tracer(tracerName),
		workers:   DefaultWorkers,
		queueSize: DefaultQueueSize,
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	if d.tracer == nil {
		d.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d.queue = make(chan job, d.queueSize)
	d.wg.Add(d.workers)
	for i := 0; i < d.workers; i++ {
		go d.run()
	}
	return d, nil
}

// Dispatch enqueues the conversion without blocking. It returns false when
// the conversion is invalid, the queue is full, or the dispatcher is closed.
// The caller's cancellation does not propagate; trace context does.
func (d *Dispatcher) Dispatch(ctx context.Context, conversion domain.Conversion) bool {
	if err := conversion.Validate(); err != nil {
		d.logger.LogAttrs(ctx, slog.LevelWarn, "conversion rejected", append(conversionAttrs(conversion), slog.String("error", err.Error()))...)
		d.metrics.recordOutcome(ctx, "rejected")
		return false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.LogAttrs(ctx, slog.LevelWarn, "conversion dropped, dispatcher closed", conversionAttrs(conversion)...)
		d.metrics.recordOutcome(ctx, "dropped")
		return false
	}
	select {
	case d.queue <- job{ctx: context.WithoutCancel(ctx), conversion: conversion}:
		d.metrics.recordOutcome(ctx, "queued")
		return true
	default:
		d.logger.LogAttrs(ctx, slog.LevelWarn, "conversion dropped, queue full", append(conversionAttrs(conversion), slog.Int("queue.size", d.queueSize))...)
		d.metrics.recordOutcome(ctx, "dropped")
		return false
	}
}

// Close stops accepting conversions and waits for queued ones to finish or
// for ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDispatcherClosed
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain conversion queue: %w", ctx.Err())
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for j := range d.queue {
		d.deliver(j)
	}
}

func (d *Dispatcher) deliver(j job) {
	ctx, cancel := context.WithTimeout(j.ctx, d.timeout)
	defer cancel()
	ctx, span := d.tracer.Start(ctx, "ConversionDispatcher.Report", trace.WithAttributes(
		attribute.String("conversion.order_id", j.conversion.OrderID),
		attribute.Int64("conversion.goal_id", j.conversion.GoalID),
	))
	defer span.End()

	started := time.Now()
	err := d.report(ctx, j.conversion)
	d.metrics.recordLatency(ctx, time.Since(started))
	attrs := conversionAttrs(j.conversion)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		d.metrics.recordOutcome(ctx, "failed")
		d.logger.LogAttrs(ctx, slog.LevelError, "conversion report failed", append(attrs, slog.String("error", err.Error()))...)
		return
	}
	d.metrics.recordOutcome(ctx, "reported")
	d.logger.LogAttrs(ctx, slog.LevelInfo, "conversion reported", attrs...)
}

func (d *Dispatcher) report(ctx context.Context, conversion domain.Conversion) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("conversion reporter panicked: %v", r)
		}
	}()
	return d.reporter.Report(ctx, conversion)
}

func conversionAttrs(c domain.Conversion) []slog.Attr {
	return []slog.Attr{
		slog.String("conversion.order_id", c.OrderID),
		slog.String("conversion.visitor_code", c.VisitorCode),
		slog.Int64("conversion.goal_id", c.GoalID),
		slog.String("conversion.revenue", c.Revenue.StringFixed(2)),
	}
}

type dispatcherMetrics struct {
	outcomes metric.Int64Counter
	latency  metric.Float64Histogram
}

func newDispatcherMetrics(m metric.Meter) dispatcherMetrics {
	if m == nil {
		return dispatcherMetrics{}
	}
	outcomes, _ := m.Int64Counter("conversions.dispatcher.outcomes", metric.WithDescription("Conversions by dispatch outcome"))
	latency, _ := m.Float64Histogram("conversions.dispatcher.report_duration", metric.WithDescription("Reporter call duration"), metric.WithUnit("s"))
	return dispatcherMetrics{outcomes: outcomes, latency: latency}
}

func (m dispatcherMetrics) recordOutcome(ctx context.Context, outcome string) {
	if m.outcomes != nil {
		m.outcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("conversion.outcome", outcome)))
	}
}

func (m dispatcherMetrics) recordLatency(ctx context.Context, d time.Duration) {
	if m.latency != nil {
		m.latency.Record(ctx, d.Seconds())
	}
}
