// Package tracing wires the OpenTelemetry SDK tracer provider used by the
// HTTP layer and the credit service.
package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName names the tracer of every span this module creates.
const InstrumentationName = "github.com/okian/fincore"

// Supported exporters.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// ErrUnknownExporter is returned for an exporter name New does not support.
var ErrUnknownExporter = errors.New("unknown trace exporter")

const (
	defaultServiceName  = "fincore"
	defaultOTLPEndpoint = "localhost:4317"
)

// Option applies a configuration option to New.
type Option func(*options)

type options struct {
	serviceName string
	exporter    string
	endpoint    string
	sampleRatio float64
	writer      io.Writer
}

// WithServiceName sets the service.name resource attribute.
func WithServiceName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.serviceName = name
		}
	}
}

// WithExporter selects none, stdout or otlp.
func WithExporter(exporter string) Option {
	return func(o *options) {
		if exporter != "" {
			o.exporter = strings.ToLower(strings.TrimSpace(exporter))
		}
	}
}

// WithOTLPEndpoint sets the collector host:port for the otlp exporter.
func WithOTLPEndpoint(endpoint string) Option {
	return func(o *options) {
		if endpoint != "" {
			o.endpoint = endpoint
		}
	}
}

// WithSampleRatio sets the fraction of root traces sampled, clamped to [0, 1].
func WithSampleRatio(ratio float64) Option {
	return func(o *options) {
		switch {
		case ratio < 0:
			o.sampleRatio = 0
		case ratio > 1:
			o.sampleRatio = 1
		default:
			o.sampleRatio = ratio
		}
	}
}

// WithWriter sets the destination of the stdout exporter.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// Provider owns the SDK tracer provider.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// New builds a tracer provider and installs it, together with the W3C trace
// context and baggage propagators, as the process-wide default.
func New(ctx context.Context, opts ...Option) (*Provider, error) {
	o := options{
		serviceName: defaultServiceName,
		exporter:    ExporterNone,
		endpoint:    defaultOTLPEndpoint,
		sampleRatio: 1,
		writer:      os.Stdout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(o.sampleRatio))),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(o.serviceName),
		)),
	}

	switch o.exporter {
	case ExporterNone:
		// Spans still carry ids for log correlation; nothing is exported.
	case ExporterStdout:
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(o.writer))
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exporter))
	case ExporterOTLP:
		exporter, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(o.endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exporter))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, o.exporter)
	}

	tp := sdktrace.NewTracerProvider(tpOpts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return &Provider{
		provider: tp,
		tracer:   tp.Tracer(InstrumentationName),
	}, nil
}

// Tracer returns the module tracer of this provider.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Shutdown flushes pending spans and stops the exporters.
func (p *Provider) Shutdown(ctx context.Context) error {
	if err := p.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown tracer provider: %w", err)
	}
	return nil
}
