package cache

import (
	"sync"
	"testing"
)

func TestMemo_SetGet(t *testing.T) {
	m := NewMemo[string](0)

	if _, ok := m.Get("missing"); ok {
		t.Fatal("expected miss on empty memo")
	}

	m.Set("a", "alpha")
	got, ok := m.Get("a")
	if !ok || got != "alpha" {
		t.Errorf("expected alpha, got %q (found=%v)", got, ok)
	}

	if m.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", m.Len())
	}

	m.Clear()
	if m.Len() != 0 {
		t.Errorf("expected empty memo after Clear, got %d", m.Len())
	}
}

func TestMemo_ConcurrentAccess(t *testing.T) {
	m := NewMemo[int](0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := Key("n", string(rune('a'+n%26)))
			m.Set(key, n%26)
			if v, ok := m.Get(key); ok && v != n%26 {
				t.Errorf("key %s: expected %d, got %d", key, n%26, v)
			}
		}(i)
	}
	wg.Wait()

	if m.Len() != 26 {
		t.Errorf("expected 26 distinct keys, got %d", m.Len())
	}
}

func TestKey_Namespaced(t *testing.T) {
	if Key("norm", "ICU") == Key("norm", "icu") {
		t.Error("expected keys to preserve case")
	}
	if Key("norm", "icu") == Key("other", "icu") {
		t.Error("expected namespaces to separate keys")
	}
}
