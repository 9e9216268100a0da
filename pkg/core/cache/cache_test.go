package cache

import (
	"errors"
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c := New[string](DefaultConfig())
	defer c.Close()

	c.Set("a", "1")
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Errorf("Expected (1, true), got (%q, %v)", v, ok)
	}
	if _, ok := c.Get("b"); ok {
		t.Error("Expected miss for unknown key")
	}

	hits, misses, rate := c.Stats()
	if hits != 1 || misses != 1 || rate != 50 {
		t.Errorf("Expected 1 hit, 1 miss, 50%%, got %d, %d, %.1f", hits, misses, rate)
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New[int](Config{MaxItems: 10, TTL: time.Hour})
	defer c.Close()

	c.SetWithTTL("short", 1, time.Millisecond)
	c.SetWithTTL("forever", 2, 0)
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("Expected expired entry to be gone")
	}
	if v, ok := c.Get("forever"); !ok || v != 2 {
		t.Errorf("Expected non-expiring entry, got (%d, %v)", v, ok)
	}
	if c.Size() != 1 {
		t.Errorf("Expected size 1, got %d", c.Size())
	}
}

func TestCache_Eviction(t *testing.T) {
	c := New[int](Config{MaxItems: 2, TTL: time.Hour})
	defer c.Close()

	c.SetWithTTL("first", 1, time.Minute)
	c.SetWithTTL("second", 2, time.Hour)
	c.Set("second", 3) // overwrite must not evict
	if c.Size() != 2 {
		t.Fatalf("Expected size 2, got %d", c.Size())
	}

	c.Set("third", 4)
	if c.Size() != 2 {
		t.Errorf("Expected size 2 after eviction, got %d", c.Size())
	}
	if _, ok := c.Get("first"); ok {
		t.Error("Expected entry expiring first to be evicted")
	}
}

func TestCache_EvictionKeepsNonExpiring(t *testing.T) {
	c := New[int](Config{MaxItems: 2, TTL: time.Hour})
	defer c.Close()

	c.SetWithTTL("pinned", 1, 0)
	c.SetWithTTL("timed", 2, time.Hour)
	c.Set("new", 3)

	if _, ok := c.Get("pinned"); !ok {
		t.Error("Expected non-expiring entry to survive eviction")
	}
	if _, ok := c.Get("timed"); ok {
		t.Error("Expected the expiring entry to be evicted")
	}

	c.SetWithTTL("pinned2", 4, 0)
	if _, ok := c.Get("new"); ok {
		t.Error("Expected the only expiring entry to be evicted before pinned ones")
	}
	if c.Size() != 2 {
		t.Errorf("Expected size 2, got %d", c.Size())
	}
}

func TestCache_GetOrSet(t *testing.T) {
	c := New[string](DefaultConfig())
	defer c.Close()

	calls := 0
	fn := func() (string, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrSet("k", fn)
		if err != nil || v != "value" {
			t.Fatalf("Expected value, got %q, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("Expected 1 computation, got %d", calls)
	}

	_, err := c.GetOrSet("bad", func() (string, error) { return "", errors.New("boom") })
	if err == nil {
		t.Error("Expected error to be returned")
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("Expected errors not to be cached")
	}
}

func TestCache_ClearDelete(t *testing.T) {
	c := New[int](DefaultConfig())
	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")
	if c.Size() != 1 {
		t.Errorf("Expected size 1, got %d", c.Size())
	}
	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Expected empty cache, got %d", c.Size())
	}
	c.Close()
	c.Close()
}

func TestKey(t *testing.T) {
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("Expected part boundaries to change the key")
	}
	if Key("x") != Key("x") {
		t.Error("Expected stable keys")
	}
	if len(Key("x")) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(Key("x")))
	}
}
