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

	catalogdomain "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
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

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
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

func (s *Service) ListProducts(ctx context.Context) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListProducts")
	defer span.End()

	result, err := s.inner.ListProducts(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("catalog.result.count", len(result)))
	s.metrics.recordQuery(ctx, "list", len(result))
	return result, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProduct", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	result, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		// Unknown ids are not span errors.
		if s.metrics.lookupMisses != nil {
			s.metrics.lookupMisses.Add(ctx, 1)
		}
		span.SetAttributes(attribute.Bool("product.found", false))
		s.logInfo(ctx, "product lookup failed", slog.Int64("product.id", id), slog.String("error", err.Error()))
		return nil, err
	}
	span.SetAttributes(attribute.Bool("product.found", true))
	s.metrics.recordQuery(ctx, "get", 1)
	return result, nil
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Categories")
	defer span.End()

	result, err := s.inner.Categories(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list categories")
	}
	span.SetAttributes(attribute.Int("catalog.category.count", len(result)))
	s.metrics.recordQuery(ctx, "categories", len(result))
	return result, nil
}

func (s *Service) ProductsByCategory(ctx context.Context, category string) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ProductsByCategory", trace.WithAttributes(attribute.String("catalog.category", category)))
	defer span.End()

	result, err := s.inner.ProductsByCategory(ctx, category)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to filter products", slog.String("category", category))
	}
	span.SetAttributes(attribute.Int("catalog.result.count", len(result)))
	s.metrics.recordQuery(ctx, "category", len(result))
	return result, nil
}

func (s *Service) SearchProducts(ctx context.Context, query string) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.SearchProducts", trace.WithAttributes(attribute.String("catalog.query", query)))
	defer span.End()

	s.logInfo(ctx, "searching products", slog.String("query", query))
	result, err := s.inner.SearchProducts(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search products", slog.String("query", query))
	}
	span.SetAttributes(attribute.Int("catalog.result.count", len(result)))
	s.metrics.recordQuery(ctx, "search", len(result))
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
	queries      metric.Int64Counter
	results      metric.Int64Histogram
	lookupMisses metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	queries, _ := m.Int64Counter("catalog.service.queries", metric.WithDescription("Number of catalog queries served"))
	results, _ := m.Int64Histogram("catalog.service.result_size", metric.WithDescription("Products returned per catalog query"))
	lookupMisses, _ := m.Int64Counter("catalog.service.lookup_misses", metric.WithDescription("Product lookups for unknown ids"))
	return serviceMetrics{queries: queries, results: results, lookupMisses: lookupMisses}
}

func (m serviceMetrics) recordQuery(ctx context.Context, kind string, size int) {
	attrs := metric.WithAttributes(attribute.String("catalog.query.kind", kind))
	if m.queries != nil {
		m.queries.Add(ctx, 1, attrs)
	}
	if m.results != nil {
		m.results.Record(ctx, int64(size), attrs)
	}
}

var _ catalogports.Service = (*Service)(nil)
