package cache

import (
	"testing"
)

func TestKeyer_Deterministic(t *testing.T) {
	keyer := NewDefaultKeyer()

	input := map[string]any{
		"prompt":      "summarize this",
		"temperature": 0.0,
		"max_tokens":  256,
	}

	k1, err := keyer.Key("gpt-4o", input)
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}
	for i := 0; i < 20; i++ {
		k2, err := keyer.Key("gpt-4o", input)
		if err != nil {
			t.Fatalf("Key failed: %v", err)
		}
		if k1 != k2 {
			t.Fatalf("keys differ across calls: %q vs %q", k1, k2)
		}
	}
}

func TestKeyer_DistinctInputs(t *testing.T) {
	keyer := NewDefaultKeyer()

	a, _ := keyer.Key("gpt-4o", map[string]any{"prompt": "hello"})
	b, _ := keyer.Key("gpt-4o", map[string]any{"prompt": "world"})
	if a == b {
		t.Error("different inputs should produce different keys")
	}
}

func TestKeyer_DistinctModels(t *testing.T) {
	keyer := NewDefaultKeyer()

	input := map[string]any{"prompt": "hello"}
	a, _ := keyer.Key("gpt-4o", input)
	b, _ := keyer.Key("claude-sonnet", input)
	if a == b {
		t.Error("different models should produce different keys")
	}
}

func TestKeyer_NestedStructures(t *testing.T) {
	keyer := NewDefaultKeyer()

	input := map[string]any{
		"messages": []any{
			map[string]any{"role": "user", "content": "hi"},
			map[string]any{"role": "assistant", "content": "hello"},
		},
		"params": map[string]any{"top_p": 0.9, "seed": 42},
	}

	a, err := keyer.Key("lm", input)
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}
	b, _ := keyer.Key("lm", input)
	if a != b {
		t.Errorf("nested input not deterministic: %q vs %q", a, b)
	}
}

func TestKeyer_NilInput(t *testing.T) {
	keyer := NewDefaultKeyer()
	if _, err := keyer.Key("lm", nil); err != nil {
		t.Errorf("Key(nil) failed: %v", err)
	}
}

func TestKeyer_ProducesValidKeys(t *testing.T) {
	keyer := NewDefaultKeyer()
	k, err := keyer.Key("gpt-4o", map[string]any{"prompt": "hello"})
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}
	if err := ValidateKey(k); err != nil {
		t.Errorf("generated key %q fails validation: %v", k, err)
	}
}
