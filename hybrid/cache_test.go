package hybrid

import (
	"sync"
	"testing"
)

func TestCacheGetOrCompileHitsOnSecondCall(t *testing.T) {
	c := NewCache(DefaultLimits())

	p1, err := c.GetOrCompile(`[0-9]+`)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}

	p2, err := c.GetOrCompile(`[0-9]+`)
	if err != nil {
		t.Fatal(err)
	}
	if p1 != p2 {
		t.Fatal("expected the same *Pattern instance on cache hit")
	}
}

func TestCacheClear(t *testing.T) {
	c := NewCache(DefaultLimits())
	if _, err := c.GetOrCompile(`abc`); err != nil {
		t.Fatal(err)
	}
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("Len() after Clear() = %d, want 0", c.Len())
	}
}

func TestCachePropagatesCompileError(t *testing.T) {
	c := NewCache(DefaultLimits())
	if _, err := c.GetOrCompile(`(unclosed`); err == nil {
		t.Fatal("expected parse error")
	}
	if c.Len() != 0 {
		t.Fatalf("a failed compile must not be cached, Len() = %d", c.Len())
	}
}

func TestCacheConcurrentGetOrCompile(t *testing.T) {
	c := NewCache(DefaultLimits())
	var wg sync.WaitGroup
	results := make([]*Pattern, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := c.GetOrCompile(`\d{3}-\d{4}`)
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = p
		}(i)
	}
	wg.Wait()
	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent GetOrCompile returned divergent *Pattern instances")
		}
	}
}
