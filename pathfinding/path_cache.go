package pathfinding

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"sync"
	"sync/atomic"

	"gridroute/core"
)

// PathCacheKey identifies a routing problem: the request and the tuning.
type PathCacheKey uint64

// KeyOf hashes req and opts with FNV-1a. Obstacle order is significant.
func KeyOf(req Request, opts Options) PathCacheKey {
	h := fnv.New64a()
	var buf [8]byte
	writeFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	writeShape := func(s core.Shape) {
		writeFloat(s.X)
		writeFloat(s.Y)
		writeFloat(s.Width)
		writeFloat(s.Height)
	}

	writeShape(req.Source)
	writeFloat(float64(req.SourceSide))
	writeShape(req.Target)
	writeFloat(float64(req.TargetSide))
	writeFloat(float64(len(req.Obstacles)))
	for _, s := range req.Obstacles {
		writeShape(s)
	}
	writeFloat(opts.AnchorOffset)
	writeFloat(opts.Step)
	writeFloat(opts.MapWidth)
	writeFloat(opts.MapHeight)
	writeFloat(float64(opts.Limit))

	return PathCacheKey(h.Sum64())
}

// PathCache stores previously computed routes for reuse.
type PathCache struct {
	mu        sync.RWMutex
	cache     map[PathCacheKey]Result
	maxSize   int
	hits      int64 // Use atomic operations
	misses    int64 // Use atomic operations
	evictions int64 // Use atomic operations
}

// NewPathCache creates a new path cache with the specified maximum size.
// A maxSize of zero or less means unbounded.
func NewPathCache(maxSize int) *PathCache {
	return &PathCache{
		cache:   make(map[PathCacheKey]Result),
		maxSize: maxSize,
	}
}

// Get retrieves a route from the cache if it exists.
func (pc *PathCache) Get(key PathCacheKey) (Result, bool) {
	pc.mu.RLock()
	result, found := pc.cache[key]
	pc.mu.RUnlock()

	if found {
		atomic.AddInt64(&pc.hits, 1)
	} else {
		atomic.AddInt64(&pc.misses, 1)
	}

	return cloneResult(result), found
}

// Put stores a route in the cache.
func (pc *PathCache) Put(key PathCacheKey, result Result) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if _, exists := pc.cache[key]; !exists && pc.maxSize > 0 && len(pc.cache) >= pc.maxSize {
		// evict an arbitrary entry
		for k := range pc.cache {
			delete(pc.cache, k)
			atomic.AddInt64(&pc.evictions, 1)
			break
		}
	}

	pc.cache[key] = cloneResult(result)
}

// Clear removes all entries from the cache and resets the statistics.
func (pc *PathCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache = make(map[PathCacheKey]Result)
	atomic.StoreInt64(&pc.hits, 0)
	atomic.StoreInt64(&pc.misses, 0)
	atomic.StoreInt64(&pc.evictions, 0)
}

// Stats returns cache statistics.
func (pc *PathCache) Stats() (hits, misses, evictions, size int) {
	pc.mu.RLock()
	size = len(pc.cache)
	pc.mu.RUnlock()

	hits = int(atomic.LoadInt64(&pc.hits))
	misses = int(atomic.LoadInt64(&pc.misses))
	evictions = int(atomic.LoadInt64(&pc.evictions))

	return hits, misses, evictions, size
}

// String returns a string representation of cache statistics.
func (pc *PathCache) String() string {
	hits, misses, evictions, size := pc.Stats()
	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	return fmt.Sprintf("PathCache[size=%d/%d, hits=%d, misses=%d, hitRate=%.1f%%, evictions=%d]",
		size, pc.maxSize, hits, misses, hitRate, evictions)
}

func cloneResult(r Result) Result {
	if r.Points != nil {
		r.Points = append([]core.Point(nil), r.Points...)
	}
	if r.Waypoints != nil {
		r.Waypoints = append([]Cell(nil), r.Waypoints...)
	}
	return r
}

// CachedRouter routes requests through a PathCache. Unlike Router it is safe
// for concurrent use: every miss builds a fresh Router.
type CachedRouter struct {
	opts  []Option
	cache *PathCache
}

// NewCachedRouter creates a cached router applying opts to every request.
func NewCachedRouter(cacheSize int, opts ...Option) *CachedRouter {
	return &CachedRouter{
		opts:  opts,
		cache: NewPathCache(cacheSize),
	}
}

// Route returns the route for req, computing it on a cache miss. extra
// options are applied after the router's own.
func (cr *CachedRouter) Route(req Request, extra ...Option) (Result, error) {
	opts := append(append([]Option(nil), cr.opts...), extra...)

	tuning := DefaultOptions()
	for _, opt := range opts {
		opt(&tuning)
	}
	key := KeyOf(req, tuning)

	if result, found := cr.cache.Get(key); found {
		return result, nil
	}

	router, err := NewRouter(req, WithOptions(tuning))
	if err != nil {
		return Result{}, err
	}
	result := router.FindPath()
	cr.cache.Put(key, result)

	return result, nil
}

// ClearCache clears the path cache.
func (cr *CachedRouter) ClearCache() {
	cr.cache.Clear()
}

// CacheStats returns the cache statistics.
func (cr *CachedRouter) CacheStats() string {
	return cr.cache.String()
}

// Cache exposes the underlying cache.
func (cr *CachedRouter) Cache() *PathCache {
	return cr.cache
}
