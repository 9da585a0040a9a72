package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"

	shopserver "github.com/Apurer/go-gin-shop-api/go"

	"github.com/Apurer/go-gin-shop-api/internal/clients/http/kameleoon"
	cartmemory "github.com/Apurer/go-gin-shop-api/internal/domains/cart/adapters/memory"
	cartobs "github.com/Apurer/go-gin-shop-api/internal/domains/cart/adapters/observability"
	cartapp "github.com/Apurer/go-gin-shop-api/internal/domains/cart/application"
	catalogmemory "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/application"
	checkoutobs "github.com/Apurer/go-gin-shop-api/internal/domains/checkout/adapters/observability"
	checkoutapp "github.com/Apurer/go-gin-shop-api/internal/domains/checkout/application"
	conversiondataapi "github.com/Apurer/go-gin-shop-api/internal/domains/conversions/adapters/dataapi"
	conversionkafka "github.com/Apurer/go-gin-shop-api/internal/domains/conversions/adapters/kafka"
	conversionlog "github.com/Apurer/go-gin-shop-api/internal/domains/conversions/adapters/logonly"
	conversionsdk "github.com/Apurer/go-gin-shop-api/internal/domains/conversions/adapters/sdk"
	conversionworkflows "github.com/Apurer/go-gin-shop-api/internal/domains/conversions/adapters/workflows"
	conversionapp "github.com/Apurer/go-gin-shop-api/internal/domains/conversions/application"
	conversionports "github.com/Apurer/go-gin-shop-api/internal/domains/conversions/ports"
	platformkafka "github.com/Apurer/go-gin-shop-api/internal/platform/kafka"
	platformmetrics "github.com/Apurer/go-gin-shop-api/internal/platform/metrics"
	platformobservability "github.com/Apurer/go-gin-shop-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
	platformtemporal "github.com/Apurer/go-gin-shop-api/internal/platform/temporal"
)

const serviceName = "shop-api"

// Run boots the shop HTTP API and blocks until ctx is cancelled or a
// termination signal arrives.
func Run(ctx context.Context, cfg Config) error {
	level, err := platformobservability.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName,
		platformobservability.WithLogLevel(level),
		platformobservability.WithEnvironment(cfg.AppEnv),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	catalogRepo := buildCatalogRepository(ctx, cfg, logger)
	catalogService := catalogobs.New(
		catalogapp.NewService(catalogRepo),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)

	cartRepo := cartmemory.NewRepository()
	cartService := cartobs.New(
		cartapp.NewService(cartRepo),
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)

	reporter, closeReporter, err := buildConversionReporter(ctx, cfg, instruments)
	if err != nil {
		return fmt.Errorf("failed to initialize conversion reporter %q: %w", cfg.ConversionReporter, err)
	}
	defer closeReporter()
	logger.Info("conversion reporter configured", slog.String("reporter", cfg.ConversionReporter))

	dispatcher, err := conversionapp.NewDispatcher(
		reporter,
		conversionapp.WithLogger(logger),
		conversionapp.WithTracer(instruments.Tracer("internal.conversions.application")),
		conversionapp.WithMeter(instruments.Meter("internal.conversions.application")),
		conversionapp.WithWorkers(cfg.ConversionWorkers),
		conversionapp.WithQueueSize(cfg.ConversionQueueSize),
		conversionapp.WithTimeout(cfg.ConversionTimeout),
	)
	if err != nil {
		return err
	}

	checkoutService := checkoutobs.New(
		checkoutapp.NewService(cartRepo, catalogService,
			checkoutapp.WithDispatcher(dispatcher),
			checkoutapp.WithGoalID(cfg.KameleoonGoalID),
			checkoutapp.WithLogger(logger),
		),
		checkoutobs.WithLogger(logger),
		checkoutobs.WithTracer(instruments.Tracer("internal.checkout.application")),
		checkoutobs.WithMeter(instruments.Meter("internal.checkout.application")),
	)

	handlers := shopserver.ApiHandleFunctions{
		DefaultAPI:  shopserver.NewDefaultAPI(serviceName),
		CatalogAPI:  shopserver.NewCatalogAPI(catalogService),
		CartAPI:     shopserver.NewCartAPI(cartService),
		CheckoutAPI: shopserver.NewCheckoutAPI(checkoutService),
	}
	router := newRouter(cfg, handlers, platformmetrics.NewServerMetrics("api"))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("shop API listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("shop API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down shop API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return errors.Join(
			srv.Shutdown(shutdownCtx),
			dispatcher.Close(shutdownCtx),
		)
	})
	return g.Wait()
}

// newRouter mounts /metrics ahead of the CORS and visitor middleware so
// scrapes never receive a visitor cookie.
func newRouter(cfg Config, handlers shopserver.ApiHandleFunctions, serverMetrics *platformmetrics.ServerMetrics) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName), serverMetrics.Middleware())
	router.GET("/metrics", gin.WrapH(serverMetrics.Handler()))
	router.Use(
		cors.New(corsConfig(cfg)),
		shopserver.VisitorMiddleware(shopserver.VisitorConfig{
			CookieName: cfg.VisitorCookieName,
			Domain:     cfg.VisitorCookieDomain,
			Secure:     !cfg.IsDevelopment(),
		}),
	)
	return shopserver.NewRouterWithGinEngine(router, handlers)
}

func corsConfig(cfg Config) cors.Config {
	return cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// buildCatalogRepository snapshots the postgres catalog when configured and
// reachable, and serves the built-in products otherwise.
func buildCatalogRepository(ctx context.Context, cfg Config, logger *slog.Logger) *catalogmemory.Repository {
	db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db == nil {
		logger.Info("serving the built-in catalog")
		return catalogmemory.NewDefaultRepository()
	}
	repo, err := catalogmemory.NewSnapshot(ctx, catalogpostgres.NewRepository(db))
	if err != nil {
		logger.Warn("failed to load catalog from postgres, using the built-in catalog", slog.String("error", err.Error()))
		return catalogmemory.NewDefaultRepository()
	}
	logger.Info("catalog loaded from postgres")
	return repo
}

func buildConversionReporter(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (conversionports.Reporter, func(), error) {
	noop := func() {}
	switch cfg.ConversionReporter {
	case ReporterDataAPI:
		client, err := kameleoon.NewClient(cfg.KameleoonDataAPI, cfg.KameleoonSiteCode,
			kameleoon.WithHTTPClient(&http.Client{Timeout: cfg.ConversionTimeout}))
		if err != nil {
			return nil, noop, err
		}
		reporter, err := conversiondataapi.NewReporter(client)
		return reporter, noop, err
	case ReporterSDK:
		initCtx, cancel := context.WithTimeout(ctx, cfg.KameleoonInitTimeout)
		defer cancel()
		sdkClient, err := conversionsdk.Dial(initCtx, conversionsdk.Config{
			SiteCode:        cfg.KameleoonSiteCode,
			ClientID:        cfg.KameleoonClientID,
			ClientSecret:    cfg.KameleoonClientSecret,
			TopLevelDomain:  cfg.KameleoonTopLevelDomain,
			Environment:     "production",
			RefreshInterval: cfg.KameleoonRefreshInterval,
		})
		if err != nil {
			return nil, noop, err
		}
		reporter, err := conversionsdk.NewReporter(sdkClient)
		return reporter, noop, err
	case ReporterKafka:
		writer, err := platformkafka.NewClient(cfg.KafkaBrokers).NewWriter(cfg.KafkaConversionTopic)
		if err != nil {
			return nil, noop, err
		}
		closeWriter := func() {
			if err := writer.Close(); err != nil {
				instruments.Logger.Warn("failed to close kafka writer", slog.String("error", err.Error()))
			}
		}
		reporter, err := conversionkafka.NewReporter(writer)
		if err != nil {
			closeWriter()
			return nil, noop, err
		}
		return reporter, closeWriter, nil
	case ReporterTemporal:
		temporalClient, err := platformtemporal.Dial(platformtemporal.ClientConfig{
			Address:   cfg.TemporalAddress,
			Namespace: cfg.TemporalNamespace,
		}, instruments.Logger, instruments.Tracer("temporal-client"))
		if err != nil {
			return nil, noop, err
		}
		reporter, err := conversionworkflows.NewTemporalReporter(temporalClient, conversionworkflows.WithLogger(instruments.Logger))
		if err != nil {
			temporalClient.Close()
			return nil, noop, err
		}
		return reporter, temporalClient.Close, nil
	case ReporterLog:
		return conversionlog.NewReporter(instruments.Logger), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown conversion reporter %q", cfg.ConversionReporter)
	}
}
