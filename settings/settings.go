package settings

import "sync"

// Settings is process-wide configuration state.
//
// Contract:
// - Concurrency: all methods are safe for concurrent use.
// - Mutation: state changes only through Configure and the setters;
//   nothing else in the module writes to a Settings.
//
// The zero value is ready to use and has caching disabled.
type Settings struct {
	mu          sync.RWMutex
	enableCache bool
}

// Default is the process-wide settings instance. Initialize it once at
// startup (typically via Configure) before constructing caches.
var Default = &Settings{}

// Options holds the fields Configure can change. Nil fields are left
// untouched, so callers only name what they want to override.
type Options struct {
	// EnableCache turns the caching layer on or off. While off, every
	// cache lookup misses and nothing is ever stored.
	EnableCache *bool
}

// Bool returns a pointer to b, for use in Options literals.
func Bool(b bool) *bool { return &b }

// Configure applies the non-nil fields of opts.
func (s *Settings) Configure(opts Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if opts.EnableCache != nil {
		s.enableCache = *opts.EnableCache
	}
}

// CacheEnabled reports whether the caching layer is enabled.
func (s *Settings) CacheEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enableCache
}

// SetCacheEnabled flips the enable flag.
func (s *Settings) SetCacheEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enableCache = enabled
}
