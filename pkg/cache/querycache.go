package cache

import (
	"container/list"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/dd0wney/tvgraph/pkg/metrics"
)

// Sized is satisfied by *sparse.Graph and *sparse.Vector; the Query Cache
// is deliberately uniform over both result kinds.
type Sized interface {
	MemoryUsage() uint64
}

// Fingerprint is the Query Cache key: (op_kind, ts_min, ts_max, params...).
// Params are folded into ParamsHash with fnv so the key stays comparable
// (usable as a map key) regardless of the parameter shape.
type Fingerprint struct {
	OpKind     string
	TsMin      int64
	TsMax      int64
	ParamsHash uint64
}

// NewFingerprint builds a Fingerprint, hashing params with fnv64a over
// their fmt.Sprint representation.
func NewFingerprint(opKind string, tsMin, tsMax int64, params ...any) Fingerprint {
	h := fnv.New64a()
	for _, p := range params {
		fmt.Fprintf(h, "%v|", p)
	}
	return Fingerprint{OpKind: opKind, TsMin: tsMin, TsMax: tsMax, ParamsHash: h.Sum64()}
}

type queryCacheEntry struct {
	key     Fingerprint
	value   Sized
	element *list.Element
}

// QueryCache is a byte-budgeted LRU memoising algorithm results by
// Fingerprint. Unlike GraphCache it has no pinning: a cached result's
// lifetime is governed purely by recency and the byte budget.
type QueryCache struct {
	mu     sync.Mutex
	budget uint64
	used   uint64
	cache  map[Fingerprint]*queryCacheEntry
	lru    *list.List

	hits    uint64
	misses  uint64
	evicted uint64

	metrics *metrics.Registry
}

// NewQueryCache creates a cache bounded by budgetBytes of aggregate
// Sized.MemoryUsage().
func NewQueryCache(budgetBytes uint64) *QueryCache {
	return &QueryCache{
		budget: budgetBytes,
		cache:  make(map[Fingerprint]*queryCacheEntry),
		lru:    list.New(),
	}
}

// AttachMetrics routes this cache's hit/miss/eviction events to r.
func (c *QueryCache) AttachMetrics(r *metrics.Registry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = r
}

// Get retrieves the cached result for fp, marking it most-recently-used.
// On hit, the cached value is returned unchanged; the cache does not
// defensively copy, so a caller mutating the returned value is mutating
// the cached entry too.
func (c *QueryCache) Get(fp Fingerprint) (Sized, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache[fp]
	if !ok {
		c.misses++
		if c.metrics != nil {
			c.metrics.RecordCacheMiss("query", fp.OpKind)
		}
		return nil, false
	}
	c.lru.MoveToFront(entry.element)
	c.hits++
	if c.metrics != nil {
		c.metrics.RecordCacheHit("query", fp.OpKind)
	}
	return entry.value, true
}

// Put stores value under fp, then evicts LRU entries until the byte
// budget is met.
func (c *QueryCache) Put(fp Fingerprint, value Sized) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.cache[fp]; ok {
		c.used -= entry.value.MemoryUsage()
		entry.value = value
		c.used += value.MemoryUsage()
		c.lru.MoveToFront(entry.element)
		c.evictLocked()
		return
	}

	entry := &queryCacheEntry{key: fp, value: value}
	entry.element = c.lru.PushFront(entry)
	c.cache[fp] = entry
	c.used += value.MemoryUsage()
	c.evictLocked()
}

// GetOrCompute returns the cached result for fp, or runs compute, caches
// its result and returns it. A compute returning nil is not cached.
func (c *QueryCache) GetOrCompute(fp Fingerprint, compute func() Sized) Sized {
	if v, ok := c.Get(fp); ok {
		return v
	}
	v := compute()
	if v != nil {
		c.Put(fp, v)
	}
	return v
}

func (c *QueryCache) evictLocked() {
	for c.used > c.budget && c.lru.Len() > 0 {
		e := c.lru.Back()
		entry := e.Value.(*queryCacheEntry)
		c.lru.Remove(e)
		delete(c.cache, entry.key)
		c.used -= entry.value.MemoryUsage()
		c.evicted++
		if c.metrics != nil {
			c.metrics.RecordCacheEviction("query", c.lru.Len(), int64(c.used))
		}
	}
}

// Len returns the number of cached entries.
func (c *QueryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns hit/miss/eviction counters.
func (c *QueryCache) Stats() (hits, misses, evicted uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.evicted
}
