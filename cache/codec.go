package cache

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// encodeValue serializes a value for durable storage. Values that
// msgpack cannot represent (functions, channels) yield an error.
func encodeValue(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cache: failed to encode value: %w", err)
	}
	return data, nil
}

// Value converts a cache hit into a concrete type.
//
// The in-memory backend returns stored values as-is, so a plain type
// assertion suffices. Durable backends return raw msgpack bytes, which
// are decoded into T. Value handles both, so callers can switch
// backends without changing their read path:
//
//	v, ok, err := c.Get(ctx, key)
//	if err != nil || !ok {
//	    ...
//	}
//	resp, err := cache.Value[Response](v)
func Value[T any](v any) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}

	var out T
	raw, ok := v.([]byte)
	if !ok {
		return out, fmt.Errorf("cache: stored value is %T, want %T", v, out)
	}
	if err := msgpack.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("cache: failed to decode value: %w", err)
	}
	return out, nil
}
