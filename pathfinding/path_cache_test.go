package pathfinding

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	"gridroute/core"
)

func TestPathCache_BasicOperations(t *testing.T) {
	cache := NewPathCache(10)

	result1 := Result{
		Points:    []core.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}},
		Waypoints: []Cell{{X: 0, Y: 0}},
		Found:     true,
	}
	result2 := Result{
		Points: []core.Point{{X: 0, Y: 0}, {X: 0, Y: 10}},
		Found:  false,
	}

	cache.Put(1, result1)
	retrieved, found := cache.Get(1)
	if !found {
		t.Error("Result not found in cache")
	}
	if !reflect.DeepEqual(retrieved, result1) {
		t.Errorf("Retrieved %+v, want %+v", retrieved, result1)
	}

	cache.Put(2, result2)
	retrieved2, found := cache.Get(2)
	if !found {
		t.Error("Second result not found in cache")
	}
	if retrieved2.Found != result2.Found {
		t.Errorf("Retrieved result has wrong Found: got %v, want %v", retrieved2.Found, result2.Found)
	}

	// Test cache miss
	if _, found = cache.Get(3); found {
		t.Error("Unexpected result found in cache")
	}

	hits, misses, _, size := cache.Stats()
	if hits != 2 {
		t.Errorf("Wrong hit count: got %d, want 2", hits)
	}
	if misses != 1 {
		t.Errorf("Wrong miss count: got %d, want 1", misses)
	}
	if size != 2 {
		t.Errorf("Wrong cache size: got %d, want 2", size)
	}
}

func TestPathCache_Eviction(t *testing.T) {
	cache := NewPathCache(2)

	cache.Put(1, Result{})
	cache.Put(2, Result{})
	cache.Put(2, Result{Found: true}) // overwrite does not evict
	cache.Put(3, Result{})

	_, _, evictions, size := cache.Stats()
	if size != 2 {
		t.Errorf("Cache size = %d, want 2", size)
	}
	if evictions != 1 {
		t.Errorf("Evictions = %d, want 1", evictions)
	}
	if _, found := cache.Get(3); !found {
		t.Error("Most recent entry should be present")
	}

	cache.Clear()
	hits, misses, evictions, size := cache.Stats()
	if hits != 0 || misses != 0 || evictions != 0 || size != 0 {
		t.Errorf("Stats after Clear = %d/%d/%d/%d", hits, misses, evictions, size)
	}
}

func TestPathCache_ReturnsCopies(t *testing.T) {
	cache := NewPathCache(0)
	original := Result{Points: []core.Point{{X: 1, Y: 1}}}
	cache.Put(7, original)

	original.Points[0].X = 99
	got, _ := cache.Get(7)
	if got.Points[0].X != 1 {
		t.Error("cache entry changed when the caller mutated its result")
	}

	got.Points[0].Y = 42
	again, _ := cache.Get(7)
	if again.Points[0].Y != 1 {
		t.Error("cache entry changed when a reader mutated its copy")
	}
}

func TestKeyOf(t *testing.T) {
	req := exampleRequest()
	opts := DefaultOptions()

	if KeyOf(req, opts) != KeyOf(exampleRequest(), DefaultOptions()) {
		t.Error("identical problems should hash to the same key")
	}

	moved := exampleRequest()
	moved.Source.X++
	if KeyOf(req, opts) == KeyOf(moved, opts) {
		t.Error("moving a shape should change the key")
	}

	flipped := exampleRequest()
	flipped.TargetSide = core.Top
	if KeyOf(req, opts) == KeyOf(flipped, opts) {
		t.Error("changing a side should change the key")
	}

	tuned := DefaultOptions()
	tuned.Step = 27
	if KeyOf(req, opts) == KeyOf(req, tuned) {
		t.Error("changing the tuning should change the key")
	}
}

func TestCachedRouter(t *testing.T) {
	cr := NewCachedRouter(16, exampleOptions()...)

	first, err := cr.Route(exampleRequest())
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	second, err := cr.Route(exampleRequest())
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached route differs from the computed one")
	}

	direct := newTestRouter(t, exampleRequest(), exampleOptions()...).FindPath()
	if !reflect.DeepEqual(first, direct) {
		t.Error("cached router and plain router disagree")
	}

	hits, misses, _, size := cr.Cache().Stats()
	if hits != 1 || misses != 1 || size != 1 {
		t.Errorf("Stats = hits %d, misses %d, size %d", hits, misses, size)
	}

	// extra options produce a separate entry
	if _, err := cr.Route(exampleRequest(), WithLimit(0)); err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if _, _, _, size = cr.Cache().Stats(); size != 2 {
		t.Errorf("size = %d, want 2", size)
	}

	if !strings.Contains(cr.CacheStats(), "hits=1") {
		t.Errorf("CacheStats = %q", cr.CacheStats())
	}

	bad := exampleRequest()
	bad.SourceSide = core.Side(12)
	if _, err := cr.Route(bad); err == nil {
		t.Error("expected an error for an unknown side")
	}

	cr.ClearCache()
	if _, _, _, size = cr.Cache().Stats(); size != 0 {
		t.Errorf("size after ClearCache = %d", size)
	}
}

func TestCachedRouter_Concurrent(t *testing.T) {
	cr := NewCachedRouter(8, exampleOptions()...)
	want := newTestRouter(t, exampleRequest(), exampleOptions()...).FindPath()

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := cr.Route(exampleRequest())
			if err != nil {
				errs <- err.Error()
				return
			}
			if !reflect.DeepEqual(got, want) {
				errs <- "route differs"
			}
		}()
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}
