// Package tracing sets up the OpenTelemetry tracer provider and the HTTP
// middleware that starts a server span for every request.
package tracing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/phrazzld/blog-api/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Provider owns the tracer provider and the propagator used to join traces
// started by callers.
type Provider struct {
	tp         *sdktrace.TracerProvider
	propagator propagation.TextMapPropagator
}

// New creates a Provider. When tracing is enabled, sampled spans are written
// as JSON to stdout. When it is disabled, spans are never sampled but every
// request still gets a trace ID, inherited from a traceparent header when
// one is present.
func New(cfg config.TracingConfig) (*Provider, error) {
	return newWithWriter(cfg, os.Stdout)
}

func newWithWriter(cfg config.TracingConfig, out io.Writer) (*Provider, error) {
	if !cfg.Enabled {
		return NewWithProcessor(cfg, nil), nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(out))
	if err != nil {
		return nil, fmt.Errorf("failed to create span exporter: %w", err)
	}
	return NewWithProcessor(cfg, sdktrace.NewBatchSpanProcessor(exporter)), nil
}

// NewWithProcessor creates a Provider that hands finished spans to sp.
// A nil sp disables sampling.
func NewWithProcessor(cfg config.TracingConfig, sp sdktrace.SpanProcessor) *Provider {
	sampler := sdktrace.NeverSample()
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
		)),
	}
	if sp != nil {
		sampler = sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))
		opts = append(opts, sdktrace.WithSpanProcessor(sp))
	}
	opts = append(opts, sdktrace.WithSampler(sampler))

	return &Provider{
		tp: sdktrace.NewTracerProvider(opts...),
		propagator: propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	}
}

// Middleware returns HTTP middleware that extracts the caller's trace context
// and wraps the request in a server span named operation.
func (p *Provider) Middleware(operation string) func(http.Handler) http.Handler {
	return otelhttp.NewMiddleware(operation,
		otelhttp.WithTracerProvider(p.tp),
		otelhttp.WithPropagators(p.propagator),
	)
}

// Shutdown flushes pending spans and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.tp.Shutdown(ctx)
}
