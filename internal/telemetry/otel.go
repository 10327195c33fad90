package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"flightscout/lib/configutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	ProtocolGrpc = "grpc"
	ProtocolHttp = "http"
)

// Config points both traces and metrics at a single OTLP collector.
type Config struct {
	Endpoint string            `json:"endpoint"`
	Protocol string            `json:"protocol"`
	Headers  map[string]string `json:"headers"`
}

func (c Config) protocol() (string, error) {
	switch c.Protocol {
	case "", ProtocolHttp:
		return ProtocolHttp, nil
	case ProtocolGrpc:
		return ProtocolGrpc, nil
	}
	return "", fmt.Errorf("unknown otlp protocol %q", c.Protocol)
}

// Telemetry holds the installed providers, the zero value is a no-op.
type Telemetry struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
}

func (t Telemetry) Enabled() bool {
	return t.TracerProvider != nil || t.MeterProvider != nil
}

// Shutdown flushes whatever the run has not exported yet.
func (t Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.TracerProvider != nil {
		errs = append(errs, t.TracerProvider.Shutdown(ctx))
	}
	if t.MeterProvider != nil {
		errs = append(errs, t.MeterProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// configFromEnv reads FLIGHTSCOUT_OTLP_ENDPOINT and FLIGHTSCOUT_OTLP_PROTOCOL,
// falling back to the nearest telemetry.json5 up the directory tree.
func configFromEnv() (Config, bool, error) {
	endpoint := os.Getenv("FLIGHTSCOUT_OTLP_ENDPOINT")
	if endpoint != "" {
		return Config{
			Endpoint: endpoint,
			Protocol: os.Getenv("FLIGHTSCOUT_OTLP_PROTOCOL"),
		}, true, nil
	}

	config, err := configutil.ReadRecursively[Config]("telemetry.json5")
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, false, nil
	}
	if err != nil {
		return Config{}, false, err
	}
	return config, config.Endpoint != "", nil
}

// SetupFromEnv installs the otel providers when an OTLP endpoint is
// configured, otherwise the global providers stay no-ops.
func SetupFromEnv(ctx context.Context, serviceName string) (Telemetry, error) {
	config, ok, err := configFromEnv()
	if err != nil {
		return Telemetry{}, err
	}
	if !ok {
		slog.Debug("no otlp endpoint configured, telemetry disabled")
		return Telemetry{}, nil
	}
	return Setup(ctx, serviceName, config)
}

func Setup(ctx context.Context, serviceName string, config Config) (Telemetry, error) {
	protocol, err := config.protocol()
	if err != nil {
		return Telemetry{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return Telemetry{}, err
	}

	spans, metrics, err := newExporters(ctx, protocol, config)
	if err != nil {
		return Telemetry{}, err
	}
	slog.Info(
		"otlp export enabled",
		"protocol", protocol,
		"endpoint", config.Endpoint,
		"headers", len(config.Headers) > 0,
	)

	tel := Telemetry{
		TracerProvider: trace.NewTracerProvider(
			trace.WithBatcher(spans),
			trace.WithResource(r),
		),
		// a collection is short lived, Shutdown pushes the final reading
		MeterProvider: metric.NewMeterProvider(
			metric.WithReader(metric.NewPeriodicReader(metrics, metric.WithInterval(time.Second*15))),
			metric.WithResource(r),
		),
	}
	otel.SetTracerProvider(tel.TracerProvider)
	otel.SetMeterProvider(tel.MeterProvider)
	return tel, nil
}

func newExporters(ctx context.Context, protocol string, config Config) (trace.SpanExporter, metric.Exporter, error) {
	if protocol == ProtocolGrpc {
		spans, err := otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpointURL(config.Endpoint),
			otlptracegrpc.WithHeaders(config.Headers),
		)
		if err != nil {
			return nil, nil, err
		}
		metrics, err := otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpointURL(config.Endpoint),
			otlpmetricgrpc.WithHeaders(config.Headers),
		)
		return spans, metrics, err
	}

	spans, err := otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpointURL(config.Endpoint),
		otlptracehttp.WithHeaders(config.Headers),
	)
	if err != nil {
		return nil, nil, err
	}
	metrics, err := otlpmetrichttp.New(
		ctx,
		otlpmetrichttp.WithEndpointURL(config.Endpoint),
		otlpmetrichttp.WithHeaders(config.Headers),
	)
	return spans, metrics, err
}
