// Package settings holds process-wide configuration state consulted by
// the caching layer.
//
// It provides a Settings container with an explicit Configure entry
// point and a single package-level Default instance. Components that are
// not handed a *Settings explicitly fall back to Default.
package settings
