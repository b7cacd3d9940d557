package cache

import (
	"context"
	"time"

	"github.com/jonwraymond/promptcache/observe"
)

// instrumented wraps a backend with lookup/insert telemetry. It changes
// no semantics: results and errors pass through unmodified.
type instrumented struct {
	backend Cache
	meta    observe.StoreMeta
	metrics observe.Metrics
	tracer  observe.Tracer
	logger  observe.Logger
}

// Instrumented wraps backend so every Get and Insert runs inside a
// span, is recorded through metrics, and has operation failures logged.
// Nil metrics, tracer or logger default to no-ops.
func Instrumented(backend Cache, meta observe.StoreMeta, metrics observe.Metrics, tracer observe.Tracer, logger observe.Logger) Cache {
	if metrics == nil {
		metrics = observe.NopMetrics()
	}
	if tracer == nil {
		tracer = observe.NopTracer()
	}
	if logger == nil {
		logger = observe.NopLogger()
	}
	return &instrumented{
		backend: backend,
		meta:    meta,
		metrics: metrics,
		tracer:  tracer,
		logger:  logger.WithStore(meta),
	}
}

func (i *instrumented) Get(ctx context.Context, key string) (any, bool, error) {
	ctx, span := i.tracer.StartOp(ctx, i.meta, "get")
	start := time.Now()
	v, ok, err := i.backend.Get(ctx, key)
	i.metrics.RecordLookup(ctx, i.meta, ok, time.Since(start), err)
	i.tracer.EndOp(span, err)
	if err != nil {
		i.logger.Error(ctx, "cache lookup failed", observe.Field{Key: "error", Value: err.Error()})
	}
	return v, ok, err
}

func (i *instrumented) Insert(ctx context.Context, key string, value any) error {
	ctx, span := i.tracer.StartOp(ctx, i.meta, "insert")
	start := time.Now()
	err := i.backend.Insert(ctx, key, value)
	i.metrics.RecordInsert(ctx, i.meta, time.Since(start), err)
	i.tracer.EndOp(span, err)
	if err != nil {
		i.logger.Error(ctx, "cache insert failed", observe.Field{Key: "error", Value: err.Error()})
	}
	return err
}

func (i *instrumented) Reset(ctx context.Context, capacity int) error {
	return i.backend.Reset(ctx, capacity)
}

func (i *instrumented) Len(ctx context.Context) (int, error) {
	return i.backend.Len(ctx)
}

func (i *instrumented) Close() error {
	return i.backend.Close()
}

var _ Cache = (*instrumented)(nil)
