package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-shop-api/internal/clients/http/kameleoon"
	conversiondataapi "github.com/Apurer/go-gin-shop-api/internal/domains/conversions/adapters/dataapi"
	platformobservability "github.com/Apurer/go-gin-shop-api/internal/platform/observability"
	platformtemporal "github.com/Apurer/go-gin-shop-api/internal/platform/temporal"
	conversionactivities "github.com/Apurer/go-gin-shop-api/internal/platform/temporal/activities/conversions"
	conversionworkflows "github.com/Apurer/go-gin-shop-api/internal/platform/temporal/workflows/conversions"
)

type workerConfig struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info"`
	TemporalAddress   string        `envconfig:"TEMPORAL_ADDRESS"`
	TemporalNamespace string        `envconfig:"TEMPORAL_NAMESPACE"`
	KameleoonSiteCode string        `envconfig:"KAMELEOON_SITE_CODE" default:"dnkd8eslzh"`
	KameleoonDataAPI  string        `envconfig:"KAMELEOON_DATA_API" default:"https://eu-data.kameleoon.io"`
	RequestTimeout    time.Duration `envconfig:"CONVERSION_TIMEOUT" default:"5s"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading configuration from the environment")
	}
	var cfg workerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	level, err := platformobservability.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	const serviceName = "shop-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName,
		platformobservability.WithLogLevel(level),
		platformobservability.WithEnvironment(cfg.AppEnv),
	)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	kameleoonClient, err := kameleoon.NewClient(cfg.KameleoonDataAPI, cfg.KameleoonSiteCode,
		kameleoon.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}))
	if err != nil {
		logger.Error("failed to configure Kameleoon client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	reporter, err := conversiondataapi.NewReporter(kameleoonClient)
	if err != nil {
		logger.Error("failed to configure conversion reporter", slog.String("error", err.Error()))
		os.Exit(1)
	}
	activities := conversionactivities.NewActivities(reporter)

	temporalClient, err := platformtemporal.Dial(platformtemporal.ClientConfig{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
	}, logger, instruments.Tracer("temporal-worker"))
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, conversionworkflows.ReportTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(conversionworkflows.ReportWorkflow, workflow.RegisterOptions{Name: conversionworkflows.ReportWorkflowName})
	w.RegisterActivityWithOptions(activities.ReportConversion, activity.RegisterOptions{Name: conversionactivities.ReportConversionActivityName})

	logger.Info("worker listening", slog.String("taskQueue", conversionworkflows.ReportTaskQueue), slog.String("siteCode", kameleoonClient.SiteCode()))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
