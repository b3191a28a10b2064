package graph

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope name used for compile and query
// spans.
const tracerName = "github.com/zero-day-ai/threatgraph/graph"

// Option configures graph compilation.
type Option func(*options)

type options struct {
	tracerProvider trace.TracerProvider
}

func defaultOptions() *options {
	return &options{
		tracerProvider: otel.GetTracerProvider(),
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider used for the
// compile span and for query spans on the resulting graph. Defaults to the
// global provider, which is a no-op unless the host application configures
// one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.tracerProvider = tp
		}
	}
}
