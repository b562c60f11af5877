// Package tracing configures OpenTelemetry tracing for the HTTP server.
package tracing

import (
	"context"
	"fmt"
	"os"

	"github.com/iwvelando/financing-sim/pkg/constants"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// EndpointEnv is read when Config.Endpoint is empty.
const EndpointEnv = "OTEL_ENDPOINT"

// Tracer starts the server's spans. It is a no-op until Init is called.
var Tracer trace.Tracer = otel.Tracer(constants.DefaultServiceName)

// Config selects where spans are exported.
type Config struct {
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"serviceName"`
	Insecure    bool   `yaml:"insecure"`
}

// Init installs a global tracer provider. Spans go to an OTLP/HTTP collector
// when an endpoint is configured and are discarded otherwise. The returned
// function flushes and stops the provider.
func Init(ctx context.Context, logger *zap.Logger, cfg Config, version string) (func(context.Context) error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = os.Getenv(EndpointEnv)
	}

	var exporter sdktrace.SpanExporter
	if endpoint != "" {
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		var err error
		exporter, err = otlptracehttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		logger.Info("exporting traces over OTLP",
			zap.String("op", "tracing.Init"),
			zap.String("endpoint", endpoint),
		)
	} else {
		exporter = noopExporter{}
		logger.Debug("no trace endpoint configured, spans are discarded",
			zap.String("op", "tracing.Init"),
		)
	}

	tp, err := install(exporter, cfg.ServiceName, version)
	if err != nil {
		return nil, err
	}
	return tp.Shutdown, nil
}

func install(exporter sdktrace.SpanExporter, serviceName, version string) (*sdktrace.TracerProvider, error) {
	if serviceName == "" {
		serviceName = constants.DefaultServiceName
	}
	if version == "" {
		version = "dev"
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	Tracer = tp.Tracer(serviceName)
	return tp, nil
}

type noopExporter struct{}

func (noopExporter) ExportSpans(context.Context, []sdktrace.ReadOnlySpan) error { return nil }

func (noopExporter) Shutdown(context.Context) error { return nil }
