package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	// Packages
	otel "go.opentelemetry.io/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	otlptracehttp "go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	propagation "go.opentelemetry.io/otel/propagation"
	resource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	trace "go.opentelemetry.io/otel/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Config for exporting traces over OTLP/HTTP. When Endpoint is empty,
// tracing is disabled.
type Config struct {
	Endpoint string            // host:port or URL of the collector
	Insecure bool              // use http rather than https
	Headers  map[string]string // sent with every export, for example an API key
	Name     string            // service name
	Version  string            // service version
	Sample   float64           // ratio of traces sampled, between 0 and 1
}

// Provider holds the tracer provider, which is nil when tracing is disabled
type Provider struct {
	tp   *sdktrace.TracerProvider
	name string
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a tracer provider and registers it globally. When no
// endpoint is set, tracers from the provider do nothing.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Endpoint == "" {
		logger.Debug("tracing disabled")
		return &Provider{name: cfg.Name}, nil
	}
	if cfg.Sample < 0 || cfg.Sample > 1 {
		return nil, fmt.Errorf("sample ratio %v out of range", cfg.Sample)
	} else if cfg.Sample == 0 {
		cfg.Sample = 1
	}

	// Service metadata
	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		attribute.String("service.name", cfg.Name),
		attribute.String("service.version", cfg.Version),
	))
	if err != nil {
		return nil, fmt.Errorf("create otel resource: %w", err)
	}

	// OTLP/HTTP exporter
	opts := []otlptracehttp.Option{}
	if isURL(cfg.Endpoint) {
		opts = append(opts, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	} else {
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(cfg.Headers))
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	// Register the provider globally
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.Sample))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("tracing enabled",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("service", cfg.Name),
		zap.Float64("sample", cfg.Sample),
	)
	return &Provider{tp: tp, name: cfg.Name}, nil
}

// Shutdown flushes pending spans and closes the exporter
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.tp == nil {
		return nil
	}
	var result error
	if err := p.tp.ForceFlush(ctx); err != nil {
		result = errors.Join(result, fmt.Errorf("flush tracer provider: %w", err))
	}
	if err := p.tp.Shutdown(ctx); err != nil {
		result = errors.Join(result, fmt.Errorf("shutdown tracer provider: %w", err))
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Enabled returns true if spans are exported
func (p *Provider) Enabled() bool {
	return p != nil && p.tp != nil
}

// Tracer returns a named tracer, or a tracer which does nothing when
// tracing is disabled
func (p *Provider) Tracer(name string) trace.Tracer {
	if !p.Enabled() {
		return noop.NewTracerProvider().Tracer(name)
	}
	return p.tp.Tracer(name)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func isURL(endpoint string) bool {
	return strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://")
}
