package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// Keyer generates deterministic cache keys from reasoning-service call
// parameters. Key derivation is the caller's responsibility; Keyer is
// the opt-in helper for callers that have no fingerprint of their own.
//
// Contract:
// - Determinism: same inputs must produce the same key, regardless of
//   map iteration order.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	// Key generates a cache key from the model identifier and request input.
	Key(model string, input any) (string, error)
}

// DefaultKeyer generates SHA-256 based cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a new default keyer.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// Key generates a deterministic cache key.
// Format: req:<model>:<hash>
// where hash is the full SHA-256 of the canonical JSON of input.
// The full digest keeps collision odds negligible even for durable
// stores that accumulate entries across many runs.
func (k *DefaultKeyer) Key(model string, input any) (string, error) {
	canonical, err := canonicalize(input)
	if err != nil {
		return "", fmt.Errorf("cache: failed to canonicalize input: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write(canonical)

	return fmt.Sprintf("req:%s:%s", model, hex.EncodeToString(h.Sum(nil))), nil
}

// canonicalize produces a deterministic JSON representation of the
// input. Maps are sorted by key; everything else relies on
// encoding/json's stable struct field ordering.
func canonicalize(v any) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}

	switch val := v.(type) {
	case map[string]any:
		return canonicalizeMap(val)
	case []any:
		return canonicalizeSlice(val)
	default:
		return json.Marshal(v)
	}
}

func canonicalizeMap(m map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := []byte("{")
	for i, k := range keys {
		if i > 0 {
			result = append(result, ',')
		}

		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		result = append(result, keyBytes...)
		result = append(result, ':')

		valBytes, err := canonicalize(m[k])
		if err != nil {
			return nil, err
		}
		result = append(result, valBytes...)
	}
	result = append(result, '}')

	return result, nil
}

func canonicalizeSlice(s []any) ([]byte, error) {
	result := []byte("[")
	for i, v := range s {
		if i > 0 {
			result = append(result, ',')
		}

		valBytes, err := canonicalize(v)
		if err != nil {
			return nil, err
		}
		result = append(result, valBytes...)
	}
	result = append(result, ']')

	return result, nil
}

// Ensure DefaultKeyer implements Keyer
var _ Keyer = (*DefaultKeyer)(nil)
