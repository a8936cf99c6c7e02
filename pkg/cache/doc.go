// Package cache implements the two byte-budgeted LRU caches the engine
// needs: GraphCache (resident *sparse.Graph values keyed by (ts, objectid),
// with reference pinning) and QueryCache (memoised algorithm results keyed
// by an operation fingerprint).
package cache
