package cache

import (
	"fmt"

	"github.com/jonwraymond/promptcache/observe"
	"github.com/jonwraymond/promptcache/settings"
)

// Backend selects the concrete cache implementation.
type Backend string

const (
	// BackendMemory is the in-process LRU cache. Contents are lost with
	// the process.
	BackendMemory Backend = "memory"

	// BackendSQLite is the durable cache backed by a single SQLite
	// store file that survives restarts.
	BackendSQLite Backend = "sqlite"
)

// Config controls construction of a cache through New.
type Config struct {
	// Backend selects the implementation. Defaults to BackendMemory.
	Backend Backend

	// Capacity is the maximum number of entries. Required, must be positive.
	Capacity int

	// Dir is the directory holding the durable store file. Used only by
	// BackendSQLite. Defaults to DefaultCacheDir().
	Dir string

	// Settings carries the process-wide enable flag consulted on every
	// Get and Insert. Defaults to settings.Default.
	Settings *settings.Settings

	// Logger receives debug and error logging. Optional.
	Logger observe.Logger

	// Metrics records lookup and insert telemetry. Optional.
	Metrics observe.Metrics

	// Tracer wraps every Get and Insert in a span. Optional.
	Tracer observe.Tracer
}

// New constructs the configured backend, wraps it with telemetry when
// configured, and applies the enable gate. Callers hold the result as a
// plain Cache; the backend choice is construction-time configuration,
// not something to inspect at runtime.
func New(cfg Config) (Cache, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = BackendMemory
	}

	var (
		c    Cache
		meta observe.StoreMeta
		err  error
	)
	switch backend {
	case BackendMemory:
		c, err = NewMemoryCache(cfg.Capacity)
		meta = observe.StoreMeta{Backend: string(BackendMemory)}
	case BackendSQLite:
		var sc *SQLiteCache
		sc, err = NewSQLiteCache(SQLiteConfig{
			Dir:      cfg.Dir,
			Capacity: cfg.Capacity,
			Logger:   cfg.Logger,
		})
		if sc != nil {
			meta = observe.StoreMeta{Backend: string(BackendSQLite), Path: sc.Path()}
		}
		c = sc
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Metrics != nil || cfg.Tracer != nil || cfg.Logger != nil {
		c = Instrumented(c, meta, cfg.Metrics, cfg.Tracer, cfg.Logger)
	}
	return Gated(c, cfg.Settings), nil
}
