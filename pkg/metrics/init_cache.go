package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// cache label values for CacheHitsTotal/CacheMissesTotal/etc; "cache" names
// which cache (graph, query), "op_kind" names the operation being served.
func (r *Registry) initCacheMetrics() {
	r.CacheHitsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tvgraph_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache", "op_kind"},
	)

	r.CacheMissesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tvgraph_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache", "op_kind"},
	)

	r.CacheEvictionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tvgraph_cache_evictions_total",
			Help: "Total number of entries evicted from a cache",
		},
		[]string{"cache"},
	)

	r.CacheEntriesTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tvgraph_cache_entries",
			Help: "Current number of entries resident in a cache",
		},
		[]string{"cache"},
	)

	r.CacheBytesInUse = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tvgraph_cache_bytes_in_use",
			Help: "Current estimated byte budget consumed by a cache",
		},
		[]string{"cache"},
	)
}
