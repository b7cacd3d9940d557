package cache

import (
	"context"
	"fmt"
	"testing"
)

func BenchmarkMemoryCache_Insert(b *testing.B) {
	c, _ := NewMemoryCache(1024)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Insert(ctx, fmt.Sprintf("key-%d", i%2048), i)
	}
}

func BenchmarkMemoryCache_GetHit(b *testing.B) {
	c, _ := NewMemoryCache(1024)
	ctx := context.Background()
	c.Insert(ctx, "hot", "value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(ctx, "hot")
	}
}

func BenchmarkSQLiteCache_Insert(b *testing.B) {
	c, err := NewSQLiteCache(SQLiteConfig{Dir: b.TempDir(), Capacity: 1024})
	if err != nil {
		b.Fatalf("NewSQLiteCache failed: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Insert(ctx, fmt.Sprintf("key-%d", i%2048), i)
	}
}

func BenchmarkSQLiteCache_GetHit(b *testing.B) {
	c, err := NewSQLiteCache(SQLiteConfig{Dir: b.TempDir(), Capacity: 1024})
	if err != nil {
		b.Fatalf("NewSQLiteCache failed: %v", err)
	}
	defer c.Close()
	ctx := context.Background()
	c.Insert(ctx, "hot", "value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(ctx, "hot")
	}
}

func BenchmarkKeyer_Key(b *testing.B) {
	keyer := NewDefaultKeyer()
	input := map[string]any{
		"prompt":      "summarize this document",
		"temperature": 0.0,
		"max_tokens":  256,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := keyer.Key("gpt-4o", input); err != nil {
			b.Fatal(err)
		}
	}
}
