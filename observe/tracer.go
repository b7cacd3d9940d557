package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// StoreMeta identifies a cache store for telemetry purposes.
type StoreMeta struct {
	Backend string // backend name, e.g. "memory" or "sqlite" (required)
	Path    string // store file path for durable backends (optional)
}

// SpanName returns the deterministic span name for a cache operation.
// Format: cache.<op>, e.g. cache.get, cache.insert.
func (m StoreMeta) SpanName(op string) string {
	return "cache." + op
}

// Tracer wraps OpenTelemetry tracing with cache-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndOp must be best-effort and must not panic.
type Tracer interface {
	// StartOp starts a new span for a cache operation (get, insert, reset).
	StartOp(ctx context.Context, meta StoreMeta, op string) (context.Context, trace.Span)

	// EndOp ends the span, recording any error.
	EndOp(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartOp starts a new span with store metadata as attributes.
func (t *tracerImpl) StartOp(ctx context.Context, meta StoreMeta, op string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("cache.backend", meta.Backend),
		attribute.String("cache.op", op),
	}
	if meta.Path != "" {
		attrs = append(attrs, attribute.String("cache.path", meta.Path))
	}

	return t.tracer.Start(ctx, meta.SpanName(op),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndOp ends the span and records the error status if present.
func (t *tracerImpl) EndOp(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// NopTracer returns a Tracer that records nothing.
func NopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartOp(ctx context.Context, meta StoreMeta, op string) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName(op))
}

func (t *noopTracer) EndOp(span trace.Span, err error) {
	span.End()
}

var (
	_ Tracer = (*tracerImpl)(nil)
	_ Tracer = (*noopTracer)(nil)
)
