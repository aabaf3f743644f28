// Package telemetry wires OpenTelemetry tracing. Without an endpoint it
// leaves the global no-op provider in place.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gitdrop/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type Config struct {
	ServiceName    string
	ServiceVersion string
	// OTLPEndpoint is a full collector URL such as http://localhost:4318.
	OTLPEndpoint string
}

type Provider struct {
	TracerProvider *trace.TracerProvider
	log            logging.Logger
}

// Initialize installs a global tracer provider exporting over OTLP/HTTP.
// It returns a nil Provider when no endpoint is configured.
func Initialize(ctx context.Context, cfg Config, log logging.Logger) (*Provider, error) {
	if cfg.OTLPEndpoint == "" {
		log.Debug(ctx, "tracing disabled")
		return nil, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter, trace.WithBatchTimeout(5*time.Second)),
		trace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info(ctx, "tracing enabled", "endpoint", cfg.OTLPEndpoint)
	return &Provider{TracerProvider: tp, log: log}, nil
}

// Shutdown flushes pending spans. A nil Provider is a no-op.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	if err := p.TracerProvider.Shutdown(ctx); err != nil {
		p.log.Warn(ctx, "tracer provider shutdown failed", "error", err)
		return err
	}
	return nil
}
