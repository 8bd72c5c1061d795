package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/AntonStoeckl/genevent-go/genevent/oteladapters"
	"github.com/AntonStoeckl/genevent-go/genevent/postgresengine"
)

const (
	serviceName            = "genevent"
	instrumentationName    = "github.com/AntonStoeckl/genevent-go"
	telemetryShutdownLimit = 5 * time.Second
)

var ErrSettingUpTelemetryFailed = errors.New("setting up telemetry failed")

// TelemetryProviders holds the OpenTelemetry providers that export to a writer.
type TelemetryProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
}

// NewStdoutTelemetry creates trace and metric providers that write JSON to w.
// Spans are exported synchronously, metrics on Shutdown.
func NewStdoutTelemetry(w io.Writer) (*TelemetryProviders, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(semconv.ServiceNameKey.String(serviceName)),
	)
	if err != nil {
		return nil, errors.Join(ErrSettingUpTelemetryFailed, err)
	}

	traceExporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, errors.Join(ErrSettingUpTelemetryFailed, err)
	}

	metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, errors.Join(ErrSettingUpTelemetryFailed, err)
	}

	return &TelemetryProviders{
		TracerProvider: sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(traceExporter),
			sdktrace.WithResource(res),
		),
		MeterProvider: sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
			sdkmetric.WithResource(res),
		),
	}, nil
}

// RecordStoreOptions wires the providers and the logger into a RecordStore.
func (p *TelemetryProviders) RecordStoreOptions(logger *slog.Logger) []postgresengine.Option {
	return []postgresengine.Option{
		postgresengine.WithContextualLogger(oteladapters.NewSlogBridgeLoggerWithHandler(logger.Handler())),
		postgresengine.WithMetrics(oteladapters.NewMetricsCollector(p.MeterProvider.Meter(instrumentationName))),
		postgresengine.WithTracing(oteladapters.NewTracingCollector(p.TracerProvider.Tracer(instrumentationName))),
	}
}

// Shutdown flushes and stops both providers.
func (p *TelemetryProviders) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, telemetryShutdownLimit)
	defer cancel()

	return errors.Join(
		p.TracerProvider.Shutdown(ctx),
		p.MeterProvider.Shutdown(ctx),
	)
}
