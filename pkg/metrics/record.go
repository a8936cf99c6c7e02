package metrics

import "time"

// RecordCacheHit records a hit against the named cache for the given
// operation kind ("get", "put", ...).
func (r *Registry) RecordCacheHit(cache, opKind string) {
	r.CacheHitsTotal.WithLabelValues(cache, opKind).Inc()
}

// RecordCacheMiss records a miss against the named cache.
func (r *Registry) RecordCacheMiss(cache, opKind string) {
	r.CacheMissesTotal.WithLabelValues(cache, opKind).Inc()
}

// RecordCacheEviction records one entry evicted from the named cache and
// sets its current entry/byte-budget gauges.
func (r *Registry) RecordCacheEviction(cache string, entries int, bytesInUse int64) {
	r.CacheEvictionsTotal.WithLabelValues(cache).Inc()
	r.CacheEntriesTotal.WithLabelValues(cache).Set(float64(entries))
	r.CacheBytesInUse.WithLabelValues(cache).Set(float64(bytesInUse))
}

// SetCacheOccupancy sets the current entry count and byte usage of the
// named cache, independent of any hit/miss/eviction event.
func (r *Registry) SetCacheOccupancy(cache string, entries int, bytesInUse int64) {
	r.CacheEntriesTotal.WithLabelValues(cache).Set(float64(entries))
	r.CacheBytesInUse.WithLabelValues(cache).Set(float64(bytesInUse))
}

// RecordWindowUpdate records the duration of one Window.Update call under
// the label the Window was given in AttachMetrics, and counts the call.
func (r *Registry) RecordWindowUpdate(metricName string, duration time.Duration) {
	r.WindowUpdateDuration.WithLabelValues(metricName).Observe(duration.Seconds())
	r.WindowAdvancesTotal.Inc()
}

// RecordDocSourceFetch records one batch fetch in the given direction
// ("forward" or "backward") and its wall-clock duration.
func (r *Registry) RecordDocSourceFetch(direction string, duration time.Duration) {
	r.DocSourceFetchesTotal.WithLabelValues(direction).Inc()
	r.DocSourceFetchDuration.Observe(duration.Seconds())
}

// RecordDocSourceArticles adds n freshly translated articles to the
// running total.
func (r *Registry) RecordDocSourceArticles(n int) {
	r.DocSourceArticlesTotal.Add(float64(n))
}
