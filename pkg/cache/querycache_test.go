package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/tvgraph/pkg/cache"
	"github.com/dd0wney/tvgraph/pkg/sparse"
)

func TestQueryCacheHitMiss(t *testing.T) {
	qc := cache.NewQueryCache(1 << 20)
	fp := cache.NewFingerprint("rect_sum", 0, 100, "directed")

	_, ok := qc.Get(fp)
	assert.False(t, ok)

	g := sparse.NewGraph(0, 0)
	g.Set(0, 1, 1)
	qc.Put(fp, g)

	got, ok := qc.Get(fp)
	require.True(t, ok)
	assert.Same(t, g, got)

	hits, misses, _ := qc.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestQueryCacheFingerprintDistinguishesParams(t *testing.T) {
	a := cache.NewFingerprint("bfs", 0, 10, "hop", 5)
	b := cache.NewFingerprint("bfs", 0, 10, "weight", 5)
	assert.NotEqual(t, a, b)
}

func TestQueryCacheGetOrCompute(t *testing.T) {
	qc := cache.NewQueryCache(1 << 20)
	fp := cache.NewFingerprint("degree_anomaly", 0, 100)

	calls := 0
	compute := func() cache.Sized {
		calls++
		v := sparse.NewVector(0, 0)
		v.Set(1, 1)
		return v
	}

	first := qc.GetOrCompute(fp, compute)
	second := qc.GetOrCompute(fp, compute)

	assert.Same(t, first, second, "second call must be served from the cache")
	assert.Equal(t, 1, calls, "compute must run exactly once per fingerprint")
}

func TestQueryCacheEvictsByBudget(t *testing.T) {
	g := sparse.NewGraph(0, 0)
	g.Set(0, 1, 1)
	budget := g.MemoryUsage() // room for exactly one entry

	qc := cache.NewQueryCache(budget)
	fp1 := cache.NewFingerprint("op", 0, 1)
	fp2 := cache.NewFingerprint("op", 0, 2)

	qc.Put(fp1, g)
	qc.Put(fp2, g)

	_, ok := qc.Get(fp1)
	assert.False(t, ok, "fp1 should have been evicted to respect the budget")

	_, ok = qc.Get(fp2)
	assert.True(t, ok)

	_, _, evicted := qc.Stats()
	assert.Equal(t, uint64(1), evicted)
}
