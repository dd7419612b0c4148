package generation

import (
	"sync"
	"testing"
)

func TestCounterAcceptsOnlyLatest(t *testing.T) {
	var c Counter

	g1 := c.Next()
	if !c.Accept(g1) {
		t.Error("freshly issued generation must be accepted")
	}

	g2 := c.Next()
	if c.Accept(g1) {
		t.Error("stale generation must be rejected once a newer one exists")
	}
	if !c.Accept(g2) {
		t.Error("latest generation must be accepted")
	}
}

func TestCounterMonotonic(t *testing.T) {
	var c Counter
	prev := c.Next()
	for i := 0; i < 100; i++ {
		g := c.Next()
		if g <= prev {
			t.Fatalf("generation %d not greater than previous %d", g, prev)
		}
		prev = g
	}
}

func TestCounterConcurrent(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup

	const goroutines = 16
	const perGoroutine = 100

	seen := make([][]uint64, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				seen[i] = append(seen[i], c.Next())
			}
		}(i)
	}
	wg.Wait()

	all := make(map[uint64]bool)
	for _, gens := range seen {
		for _, g := range gens {
			if all[g] {
				t.Fatalf("generation %d issued twice", g)
			}
			all[g] = true
		}
	}
	if len(all) != goroutines*perGoroutine {
		t.Errorf("issued %d distinct generations, want %d", len(all), goroutines*perGoroutine)
	}
	if !c.Accept(c.Current()) {
		t.Error("Current must always be accepted")
	}
}
