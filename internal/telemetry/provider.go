// Package telemetry wires the OpenTelemetry trace exporter.
package telemetry

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Setup installs a global tracer provider exporting to endpoint over OTLP/HTTP.
//
// Tracing is opt-in: with an empty endpoint Setup returns a no-op shutdown
// function and leaves the global provider untouched.
//
// The returned shutdown function flushes pending spans.
func Setup(ctx context.Context, endpoint, serviceName string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	if endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(endpoint),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Worker owns the tracer provider for the lifetime of the process.
type Worker struct {
	endpoint    string
	serviceName string
}

func NewWorker(endpoint, serviceName string) *Worker {
	return &Worker{endpoint: endpoint, serviceName: serviceName}
}

// Start sets up tracing, blocks until ctx is done and then flushes.
func (w *Worker) Start(ctx context.Context) error {
	shutdown, err := Setup(ctx, w.endpoint, w.serviceName)
	if err != nil {
		return err
	}
	if w.endpoint != "" {
		slog.InfoContext(ctx, "exporting traces", "endpoint", w.endpoint, "service", w.serviceName)
	}

	<-ctx.Done()
	return shutdown(context.WithoutCancel(ctx))
}
