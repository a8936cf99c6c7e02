package cache

import (
	"container/list"
	"sync"

	"github.com/dd0wney/tvgraph/pkg/metrics"
	"github.com/dd0wney/tvgraph/pkg/objectid"
	"github.com/dd0wney/tvgraph/pkg/sparse"
)

// GraphKey identifies a resident graph by its TVG position.
type GraphKey struct {
	TS  int64
	OID objectid.ID
}

type graphCacheEntry struct {
	key      GraphKey
	value    *sparse.Graph
	element  *list.Element
	pinCount int
}

// GraphCache is an LRU-bounded, byte-budgeted cache of resident graphs with
// reference pinning: a pinned entry is never evicted regardless of
// recency.
type GraphCache struct {
	mu      sync.Mutex
	budget  uint64
	used    uint64
	cache   map[GraphKey]*graphCacheEntry
	lru     *list.List
	hits    uint64
	misses  uint64
	evicted uint64

	metrics *metrics.Registry
	evictFn func(key GraphKey, g *sparse.Graph)
}

// NewGraphCache creates a cache bounded by budgetBytes of aggregate
// Graph.MemoryUsage().
func NewGraphCache(budgetBytes uint64) *GraphCache {
	return &GraphCache{
		budget: budgetBytes,
		cache:  make(map[GraphKey]*graphCacheEntry),
		lru:    list.New(),
	}
}

// AttachMetrics routes this cache's hit/miss/eviction events to r, in
// addition to the in-process counters Stats already reports.
func (c *GraphCache) AttachMetrics(r *metrics.Registry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = r
}

// OnEvict registers fn to be called for every entry the cache evicts.
// The document-source sync layer uses this to clear an evicted graph's
// edges while preserving its header, per the eviction contract of the TVG
// cache. fn must not call back into the cache.
func (c *GraphCache) OnEvict(fn func(key GraphKey, g *sparse.Graph)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictFn = fn
}

// Get retrieves the graph for key, marking it most-recently-used.
func (c *GraphCache) Get(key GraphKey) (*sparse.Graph, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache[key]
	if !ok {
		c.misses++
		if c.metrics != nil {
			c.metrics.RecordCacheMiss("graph", "get")
		}
		return nil, false
	}
	c.lru.MoveToFront(entry.element)
	c.hits++
	if c.metrics != nil {
		c.metrics.RecordCacheHit("graph", "get")
	}
	return entry.value, true
}

// Put inserts or replaces the graph for key, then evicts unpinned entries
// from the LRU tail until the byte budget is met or no unpinned entry
// remains.
func (c *GraphCache) Put(key GraphKey, g *sparse.Graph) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.cache[key]; ok {
		c.used -= entry.value.MemoryUsage()
		entry.value = g
		c.used += g.MemoryUsage()
		c.lru.MoveToFront(entry.element)
		c.evictLocked()
		return
	}

	entry := &graphCacheEntry{key: key, value: g}
	entry.element = c.lru.PushFront(entry)
	c.cache[key] = entry
	c.used += g.MemoryUsage()
	c.evictLocked()
}

// Pin marks key as referenced, protecting it from eviction. Pins nest:
// Unpin must be called once per Pin before the entry becomes evictable
// again.
func (c *GraphCache) Pin(key GraphKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.cache[key]; ok {
		entry.pinCount++
	}
}

// Unpin releases one pin on key.
func (c *GraphCache) Unpin(key GraphKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.cache[key]; ok && entry.pinCount > 0 {
		entry.pinCount--
	}
}

// evictLocked walks the LRU tail forward until it finds an unpinned entry
// to evict, repeating until the budget is satisfied or every remaining
// entry is pinned.
func (c *GraphCache) evictLocked() {
	for c.used > c.budget {
		e := c.lru.Back()
		for e != nil {
			if e.Value.(*graphCacheEntry).pinCount == 0 {
				break
			}
			e = e.Prev()
		}
		if e == nil {
			return // everything left is pinned
		}
		entry := e.Value.(*graphCacheEntry)
		c.lru.Remove(e)
		delete(c.cache, entry.key)
		c.used -= entry.value.MemoryUsage()
		c.evicted++
		if c.metrics != nil {
			c.metrics.RecordCacheEviction("graph", c.lru.Len(), int64(c.used))
		}
		if c.evictFn != nil {
			c.evictFn(entry.key, entry.value)
		}
	}
}

// Len returns the number of resident entries.
func (c *GraphCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns hit/miss/eviction counters.
func (c *GraphCache) Stats() (hits, misses, evicted uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.evicted
}
