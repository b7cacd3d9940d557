// Package observe provides observability primitives for the caching layer.
//
// It is a pure instrumentation library: structured logging, OpenTelemetry
// metrics and tracing, and exporter setup. Cache backends and the
// memoizer accept these primitives as optional collaborators; every
// primitive has a no-op form, so telemetry never changes cache semantics.
package observe
