package cache

import (
	"testing"
	"time"
)

func TestLRUGetSet(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)

	if _, ok := c.Get("a"); ok {
		t.Fatal("empty cache should miss")
	}
	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %d, %v", v, ok)
	}

	// Overwrite keeps a single entry
	c.Set("a", 2)
	if v, _ := c.Get("a"); v != 2 {
		t.Fatalf("overwrite lost: got %d", v)
	}
	if c.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", c.Size())
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewLRUCache[string](2, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a") // refresh a, so b is the eviction candidate
	c.Set("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Fatal("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a should survive eviction")
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatal("c should be present")
	}
}

func TestLRUExpiry(t *testing.T) {
	c := NewLRUCache[int](4, time.Nanosecond)
	c.Set("a", 1)
	time.Sleep(2 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expired entry should miss")
	}

	// Non-positive TTL means entries never expire
	forever := NewLRUCache[int](4, 0)
	forever.Set("a", 1)
	time.Sleep(2 * time.Millisecond)
	if _, ok := forever.Get("a"); !ok {
		t.Fatal("entry with no TTL should persist")
	}
}

func TestLRUStats(t *testing.T) {
	c := NewLRUCache[int](4, time.Minute)
	c.Get("missing")
	c.Set("a", 1)
	c.Get("a")
	c.Get("a")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Entries != 1 {
		t.Fatalf("Stats() = %+v, want hits=2 misses=1 entries=1", s)
	}
}

func TestLRUCleanExpired(t *testing.T) {
	c := NewLRUCache[int](4, time.Nanosecond)
	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(2 * time.Millisecond)
	if n := c.CleanExpired(); n != 2 {
		t.Fatalf("CleanExpired() = %d, want 2", n)
	}
	if c.Size() != 0 {
		t.Fatalf("Size() = %d after cleanup", c.Size())
	}
}
