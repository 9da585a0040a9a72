package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	cartdomain "github.com/Apurer/go-gin-shop-api/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-shop-api/internal/domains/cart/ports"
)

const tracerName = "github.com/Apurer/go-gin-shop-api/internal/domains/cart/adapters/observability/service"

// Service decorates the cart service with tracing, logging, and metrics.
type Service struct {
	inner   cartports.Service
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

// New wraps the core cart service.
func New(inner cartports.Service, opts ...Option) cartports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
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

func (s *Service) GetCart(ctx context.Context, userID string) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.GetCart", trace.WithAttributes(attribute.String("cart.user_id", userID)))
	defer span.End()

	result, err := s.inner.GetCart(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load cart", slog.String("cart.user_id", userID))
	}
	span.SetAttributes(attribute.Int("cart.items", len(result.Items)))
	return result, nil
}

func (s *Service) AddItem(ctx context.Context, userID string, productID int64, quantity int) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddItem", trace.WithAttributes(
		attribute.String("cart.user_id", userID),
		attribute.Int64("product.id", productID),
		attribute.Int("cart.quantity", quantity),
	))
	defer span.End()

	s.logInfo(ctx, "adding cart item", slog.String("cart.user_id", userID), slog.Int64("product.id", productID), slog.Int("quantity", quantity))
	result, err := s.inner.AddItem(ctx, userID, productID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add cart item", slog.String("cart.user_id", userID), slog.Int64("product.id", productID))
	}
	s.metrics.recordMutation(ctx, "add")
	span.SetAttributes(attribute.Int("cart.items", len(result.Items)))
	return result, nil
}

func (s *Service) RemoveItem(ctx context.Context, userID string, productID int64) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveItem", trace.WithAttributes(
		attribute.String("cart.user_id", userID),
		attribute.Int64("product.id", productID),
	))
	defer span.End()

	s.logInfo(ctx, "removing cart item", slog.String("cart.user_id", userID), slog.Int64("product.id", productID))
	result, err := s.inner.RemoveItem(ctx, userID, productID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove cart item", slog.String("cart.user_id", userID), slog.Int64("product.id", productID))
	}
	s.metrics.recordMutation(ctx, "remove")
	span.SetAttributes(attribute.Int("cart.items", len(result.Items)))
	return result, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, userID string, productID int64, quantity int) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.UpdateQuantity", trace.WithAttributes(
		attribute.String("cart.user_id", userID),
		attribute.Int64("product.id", productID),
		attribute.Int("cart.quantity", quantity),
	))
	defer span.End()

	s.logInfo(ctx, "updating cart quantity", slog.String("cart.user_id", userID), slog.Int64("product.id", productID), slog.Int("quantity", quantity))
	result, err := s.inner.UpdateQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update cart quantity", slog.String("cart.user_id", userID), slog.Int64("product.id", productID))
	}
	s.metrics.recordMutation(ctx, "update")
	span.SetAttributes(attribute.Int("cart.items", len(result.Items)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	mutations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("cart.service.mutations", metric.WithDescription("Number of cart mutations applied"))
	return serviceMetrics{mutations: mutations}
}

func (m serviceMetrics) recordMutation(ctx context.Context, op string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("cart.operation", op)))
	}
}

var _ cartports.Service = (*Service)(nil)
