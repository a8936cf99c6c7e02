// Package metrics holds the prometheus.Registry wiring for the engine's
// internal caches and data paths: graph-cache/query-cache hit-miss
// counters, window update latency, and document-source fetch counts.
package metrics
