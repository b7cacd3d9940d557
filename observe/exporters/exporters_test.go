package exporters

import (
	"context"
	"testing"
)

func TestNewTracingExporter(t *testing.T) {
	ctx := context.Background()

	for _, name := range []string{"stdout", "none", ""} {
		exp, err := NewTracingExporter(ctx, name)
		if err != nil {
			t.Errorf("NewTracingExporter(%q) failed: %v", name, err)
		}
		if exp == nil {
			t.Errorf("NewTracingExporter(%q) returned nil exporter", name)
		}
	}

	if _, err := NewTracingExporter(ctx, "zipkin"); err == nil {
		t.Error("NewTracingExporter(zipkin) should fail")
	}
}

func TestNewTracingExporter_OTLPWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")

	if _, err := NewTracingExporter(context.Background(), "otlp"); err == nil {
		t.Error("otlp exporter without endpoint should fail")
	}
}

func TestNewMetricsReader(t *testing.T) {
	ctx := context.Background()

	for _, name := range []string{"stdout", "prometheus", "none", ""} {
		reader, err := NewMetricsReader(ctx, name)
		if err != nil {
			t.Errorf("NewMetricsReader(%q) failed: %v", name, err)
		}
		if reader == nil {
			t.Errorf("NewMetricsReader(%q) returned nil reader", name)
		}
	}

	if _, err := NewMetricsReader(ctx, "statsd"); err == nil {
		t.Error("NewMetricsReader(statsd) should fail")
	}
}

func TestNewMetricsReader_OTLPWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")

	if _, err := NewMetricsReader(context.Background(), "otlp"); err == nil {
		t.Error("otlp reader without endpoint should fail")
	}
}
