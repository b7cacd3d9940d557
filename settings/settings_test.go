package settings

import (
	"sync"
	"testing"
)

func TestZeroValueDisabled(t *testing.T) {
	var s Settings
	if s.CacheEnabled() {
		t.Error("zero-value Settings should have caching disabled")
	}
}

func TestConfigure(t *testing.T) {
	var s Settings

	s.Configure(Options{EnableCache: Bool(true)})
	if !s.CacheEnabled() {
		t.Error("Configure(EnableCache=true) should enable caching")
	}

	// Nil fields leave state untouched
	s.Configure(Options{})
	if !s.CacheEnabled() {
		t.Error("Configure with nil fields should not change the flag")
	}

	s.Configure(Options{EnableCache: Bool(false)})
	if s.CacheEnabled() {
		t.Error("Configure(EnableCache=false) should disable caching")
	}
}

func TestSetCacheEnabled(t *testing.T) {
	var s Settings

	s.SetCacheEnabled(true)
	if !s.CacheEnabled() {
		t.Error("SetCacheEnabled(true) should enable caching")
	}

	s.SetCacheEnabled(false)
	if s.CacheEnabled() {
		t.Error("SetCacheEnabled(false) should disable caching")
	}
}

func TestConcurrentAccess(t *testing.T) {
	var s Settings
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(on bool) {
			defer wg.Done()
			s.SetCacheEnabled(on)
		}(i%2 == 0)
		go func() {
			defer wg.Done()
			_ = s.CacheEnabled()
		}()
	}
	wg.Wait()
}
