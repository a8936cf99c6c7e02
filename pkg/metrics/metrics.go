package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every metric exposed by the engine.
type Registry struct {
	// Cache metrics, shared shape for the graph cache and the query cache.
	CacheHitsTotal      *prometheus.CounterVec
	CacheMissesTotal    *prometheus.CounterVec
	CacheEvictionsTotal *prometheus.CounterVec
	CacheEntriesTotal   *prometheus.GaugeVec
	CacheBytesInUse     *prometheus.GaugeVec

	// Window metrics.
	WindowUpdateDuration *prometheus.HistogramVec
	WindowAdvancesTotal  prometheus.Counter

	// Document-source metrics.
	DocSourceFetchesTotal  *prometheus.CounterVec
	DocSourceFetchDuration prometheus.Histogram
	DocSourceArticlesTotal prometheus.Counter

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry, creating it on first
// use.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new, independent registry with all metrics
// initialized. Tests and cmd/tvgload both want their own instance rather
// than sharing the process-wide default.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.initCacheMetrics()
	r.initWindowMetrics()
	r.initDocSourceMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying prometheus.Registry, for
// wiring into an HTTP handler.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
