package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	checkoutapp "github.com/Apurer/go-gin-shop-api/internal/domains/checkout/application"
	checkoutdomain "github.com/Apurer/go-gin-shop-api/internal/domains/checkout/domain"
	checkoutports "github.com/Apurer/go-gin-shop-api/internal/domains/checkout/ports"
)

const tracerName = "github.com/Apurer/go-gin-shop-api/internal/domains/checkout/adapters/observability/service"

// Service decorates checkout with tracing, logging, and metrics.
type Service struct {
	inner   checkoutports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

func New(inner checkoutports.Service, opts ...Option) checkoutports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Checkout(ctx context.Context, userID, visitorCode string) (*checkoutdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.Checkout", trace.WithAttributes(
		attribute.String("cart.user_id", userID),
		attribute.Bool("checkout.tracked", visitorCode != ""),
	))
	defer span.End()

	order, err := s.inner.Checkout(ctx, userID, visitorCode)
	if err != nil {
		if errors.Is(err, checkoutapp.ErrEmptyCart) {
			s.metrics.recordOutcome(ctx, "empty")
			s.logInfo(ctx, "checkout rejected, cart empty", slog.String("cart.user_id", userID))
			return nil, err
		}
		s.metrics.recordOutcome(ctx, "failed")
		return nil, s.handleError(ctx, span, err, "checkout failed", slog.String("cart.user_id", userID))
	}
	s.metrics.recordOutcome(ctx, "completed")
	s.metrics.recordRevenue(ctx, order.Total.InexactFloat64())
	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.Int("order.lines", len(order.Lines)),
		attribute.String("order.total", order.TotalString()),
	)
	s.logInfo(ctx, "checkout completed",
		slog.String("cart.user_id", userID),
		slog.String("order.id", order.ID),
		slog.String("order.total", order.TotalString()),
	)
	return order, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	outcomes metric.Int64Counter
	revenue  metric.Float64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	outcomes, _ := m.Int64Counter("checkout.service.outcomes", metric.WithDescription("Checkouts by outcome"))
	revenue, _ := m.Float64Counter("checkout.service.revenue", metric.WithDescription("Sum of completed order totals"))
	return serviceMetrics{outcomes: outcomes, revenue: revenue}
}

func (m serviceMetrics) recordOutcome(ctx context.Context, outcome string) {
	if m.outcomes != nil {
		m.outcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("checkout.outcome", outcome)))
	}
}

func (m serviceMetrics) recordRevenue(ctx context.Context, amount float64) {
	if m.revenue != nil {
		m.revenue.Add(ctx, amount)
	}
}

var _ checkoutports.Service = (*Service)(nil)
