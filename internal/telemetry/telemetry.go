// Package telemetry provides OpenTelemetry tracing for level loading and turns.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "ghostblade"
	serviceVersion = "0.2.0"

	honeycombEndpoint = "api.honeycomb.io"
	defaultDataset    = "ghostblade"
)

// Config selects where spans are exported.
type Config struct {
	// APIKey is the Honeycomb team key. Without it tracing stays disabled.
	APIKey  string
	Dataset string
}

// Enabled reports whether spans will be exported.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}

// Setup installs a global tracer provider exporting to Honeycomb over OTLP HTTP.
// When cfg is not enabled the global no-op provider is left in place.
//
// Returns a shutdown function that should be called on application exit.
func Setup(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	if !cfg.Enabled() {
		return func(context.Context) error { return nil }, nil
	}

	dataset := cfg.Dataset
	if dataset == "" {
		dataset = defaultDataset
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(honeycombEndpoint),
		otlptracehttp.WithHeaders(map[string]string{
			"x-honeycomb-team":    cfg.APIKey,
			"x-honeycomb-dataset": dataset,
		}),
	)
	if err != nil {
		return nil, err
	}

	// Own resource, not merged with resource.Default(), to avoid schema URL conflicts
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("telemetry.sdk.language", "go"),
			attribute.String("host.name", hostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a named tracer for the given component.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
