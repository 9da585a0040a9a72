// Package temporal dials Temporal with the process-wide observability wiring.
package temporal

import (
	"errors"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
)

// ClientConfig selects the cluster to dial.
type ClientConfig struct {
	Address   string
	Namespace string
}

// Dial connects to Temporal with a tracing interceptor and a structured
// logger. Empty address or namespace fall back to the SDK defaults.
func Dial(cfg ClientConfig, logger *slog.Logger, tracer trace.Tracer) (client.Client, error) {
	if logger == nil {
		return nil, errors.New("temporal logger is nil")
	}
	tracerOptions := temporalotel.TracerOptions{Tracer: tracer}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  orDefault(cfg.Address, client.DefaultHostPort),
		Namespace: orDefault(cfg.Namespace, client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
