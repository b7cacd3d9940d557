package cache

import (
	"context"

	"github.com/jonwraymond/promptcache/settings"
)

// gate wraps a backend with the process-wide enable check. The check is
// the first action of every Get and Insert, so a disabled cache never
// touches the backend's storage. Reset, Len and Close always pass
// through: a disabled cache can still be cleared and torn down.
type gate struct {
	backend  Cache
	settings *settings.Settings
}

// Gated wraps backend so every Get and Insert first consults the enable
// flag in s. While the flag is off, Get reports a miss and Insert is a
// no-op. A nil s falls back to settings.Default. The gate is the only
// place this policy lives; backends know nothing about it.
func Gated(backend Cache, s *settings.Settings) Cache {
	if s == nil {
		s = settings.Default
	}
	return &gate{backend: backend, settings: s}
}

func (g *gate) Get(ctx context.Context, key string) (any, bool, error) {
	if !g.settings.CacheEnabled() {
		return nil, false, nil
	}
	return g.backend.Get(ctx, key)
}

func (g *gate) Insert(ctx context.Context, key string, value any) error {
	if !g.settings.CacheEnabled() {
		return nil
	}
	return g.backend.Insert(ctx, key, value)
}

func (g *gate) Reset(ctx context.Context, capacity int) error {
	return g.backend.Reset(ctx, capacity)
}

func (g *gate) Len(ctx context.Context) (int, error) {
	return g.backend.Len(ctx)
}

func (g *gate) Close() error {
	return g.backend.Close()
}

var _ Cache = (*gate)(nil)
