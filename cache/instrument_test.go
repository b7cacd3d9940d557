package cache

import (
	"context"
	"testing"
	"time"

	otelcodes "go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jonwraymond/promptcache/observe"
)

// recordingMetrics captures what the instrumented wrapper reports.
type recordingMetrics struct {
	lookups int
	hits    int
	inserts int
	errors  int
}

func (r *recordingMetrics) RecordLookup(_ context.Context, _ observe.StoreMeta, hit bool, _ time.Duration, err error) {
	r.lookups++
	if hit {
		r.hits++
	}
	if err != nil {
		r.errors++
	}
}

func (r *recordingMetrics) RecordInsert(_ context.Context, _ observe.StoreMeta, _ time.Duration, err error) {
	r.inserts++
	if err != nil {
		r.errors++
	}
}

var _ observe.Metrics = (*recordingMetrics)(nil)

func TestInstrumented_RecordsLookupsAndInserts(t *testing.T) {
	backend, _ := NewMemoryCache(4)
	rec := &recordingMetrics{}
	c := Instrumented(backend, observe.StoreMeta{Backend: "memory"}, rec, nil, nil)
	ctx := context.Background()

	c.Insert(ctx, "k", "v")
	c.Get(ctx, "k")
	c.Get(ctx, "missing")

	if rec.inserts != 1 {
		t.Errorf("inserts recorded = %d, want 1", rec.inserts)
	}
	if rec.lookups != 2 {
		t.Errorf("lookups recorded = %d, want 2", rec.lookups)
	}
	if rec.hits != 1 {
		t.Errorf("hits recorded = %d, want 1", rec.hits)
	}
	if rec.errors != 0 {
		t.Errorf("errors recorded = %d, want 0", rec.errors)
	}
}

func TestInstrumented_RecordsSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer tp.Shutdown(context.Background())

	backend, _ := NewMemoryCache(4)
	c := Instrumented(backend, observe.StoreMeta{Backend: "memory"},
		nil, observe.NewTracer(tp.Tracer("test")), nil)
	ctx := context.Background()

	c.Insert(ctx, "k", "v")
	c.Get(ctx, "k")

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Name() != "cache.insert" {
		t.Errorf("first span = %q, want cache.insert", spans[0].Name())
	}
	if spans[1].Name() != "cache.get" {
		t.Errorf("second span = %q, want cache.get", spans[1].Name())
	}
	for _, span := range spans {
		if span.Status().Code != otelcodes.Ok {
			t.Errorf("span %q status = %v, want Ok", span.Name(), span.Status().Code)
		}
	}
}

func TestInstrumented_SpanRecordsError(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer tp.Shutdown(context.Background())

	backend, _ := NewMemoryCache(4)
	c := Instrumented(backend, observe.StoreMeta{Backend: "memory"},
		nil, observe.NewTracer(tp.Tracer("test")), nil)

	if err := c.Insert(context.Background(), "", "v"); err == nil {
		t.Fatal("Insert with empty key should fail")
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status().Code != otelcodes.Error {
		t.Errorf("span status = %v, want Error", spans[0].Status().Code)
	}
}

func TestInstrumented_RecordsErrors(t *testing.T) {
	backend, _ := NewMemoryCache(4)
	rec := &recordingMetrics{}
	c := Instrumented(backend, observe.StoreMeta{Backend: "memory"}, rec, nil, nil)

	// An invalid key fails in the backend and must be counted.
	if err := c.Insert(context.Background(), "", "v"); err == nil {
		t.Fatal("Insert with empty key should fail")
	}
	if rec.errors != 1 {
		t.Errorf("errors recorded = %d, want 1", rec.errors)
	}
}

func TestInstrumented_PassesResultsThrough(t *testing.T) {
	backend, _ := NewMemoryCache(4)
	c := Instrumented(backend, observe.StoreMeta{Backend: "memory"}, nil, nil, nil)
	ctx := context.Background()

	c.Insert(ctx, "k", 7)
	v, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || v != 7 {
		t.Errorf("Get = (%v, %v, %v), want (7, true, nil)", v, ok, err)
	}

	if err := c.Reset(ctx, 8); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if n, _ := c.Len(ctx); n != 0 {
		t.Errorf("Len = %d after Reset, want 0", n)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
