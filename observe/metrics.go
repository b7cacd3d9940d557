package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records cache operation telemetry.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must return quickly; recording is best-effort.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordLookup records a Get with its outcome and duration.
	RecordLookup(ctx context.Context, meta StoreMeta, hit bool, duration time.Duration, err error)

	// RecordInsert records an Insert with its duration and error status.
	RecordInsert(ctx context.Context, meta StoreMeta, duration time.Duration, err error)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	lookupCount  metric.Int64Counter
	insertCount  metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewMetrics creates a Metrics instance recording through the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	lookupCount, err := meter.Int64Counter(
		"cache.lookup.total",
		metric.WithDescription("Total number of cache lookups"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	insertCount, err := meter.Int64Counter(
		"cache.insert.total",
		metric.WithDescription("Total number of cache inserts"),
		metric.WithUnit("{insert}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"cache.errors.total",
		metric.WithDescription("Total number of cache operation errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"cache.op.duration_ms",
		metric.WithDescription("Cache operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		lookupCount:  lookupCount,
		insertCount:  insertCount,
		errorCount:   errorCount,
		durationHist: durationHist,
	}, nil
}

func (m *metricsImpl) storeAttrs(meta StoreMeta) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("cache.backend", meta.Backend),
	}
	if meta.Path != "" {
		attrs = append(attrs, attribute.String("cache.path", meta.Path))
	}
	return attrs
}

// RecordLookup records a lookup outcome.
func (m *metricsImpl) RecordLookup(ctx context.Context, meta StoreMeta, hit bool, duration time.Duration, err error) {
	result := "miss"
	if hit {
		result = "hit"
	}
	attrs := append(m.storeAttrs(meta),
		attribute.String("cache.result", result),
		attribute.String("cache.op", "get"),
	)
	opt := metric.WithAttributes(attrs...)

	m.lookupCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Microseconds())/1000.0, opt)
}

// RecordInsert records an insert.
func (m *metricsImpl) RecordInsert(ctx context.Context, meta StoreMeta, duration time.Duration, err error) {
	attrs := append(m.storeAttrs(meta),
		attribute.String("cache.op", "insert"),
	)
	opt := metric.WithAttributes(attrs...)

	m.insertCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Microseconds())/1000.0, opt)
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (noopMetrics) RecordLookup(ctx context.Context, meta StoreMeta, hit bool, duration time.Duration, err error) {
}

func (noopMetrics) RecordInsert(ctx context.Context, meta StoreMeta, duration time.Duration, err error) {
}

// NopMetrics returns a Metrics that records nothing.
func NopMetrics() Metrics { return noopMetrics{} }
