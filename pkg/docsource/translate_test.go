package docsource_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/tvgraph/pkg/docsource"
)

func TestTranslateSumWeights(t *testing.T) {
	mentions := []docsource.Entity{
		{Sen: 0, Ent: "alice"},
		{Sen: 1, Ent: "bob"},
		{Sen: 3, Ent: "bob"},
	}
	g := docsource.Translate(mentions, docsource.TranslateConfig{MaxDistance: 5, SumWeights: true})

	// two qualifying pairs: (alice@0,bob@1) dist1, (alice@0,bob@3) dist3,
	// both landing on the same (alice,bob) edge.
	edges := g.Edges()
	require.Len(t, edges, 1)
	want := math.Exp(-1) + math.Exp(-3)
	assert.InDelta(t, want, float64(edges[0].Weight), 1e-6)
}

func TestTranslateSelfPairsIgnored(t *testing.T) {
	mentions := []docsource.Entity{
		{Sen: 0, Ent: "alice"},
		{Sen: 1, Ent: "alice"},
	}
	g := docsource.Translate(mentions, docsource.TranslateConfig{MaxDistance: 5, SumWeights: true})
	assert.True(t, g.Empty())
}

func TestTranslateMaxDistanceExcludesFarPairs(t *testing.T) {
	mentions := []docsource.Entity{
		{Sen: 0, Ent: "alice"},
		{Sen: 10, Ent: "bob"},
	}
	g := docsource.Translate(mentions, docsource.TranslateConfig{MaxDistance: 2, SumWeights: true})
	assert.True(t, g.Empty())
}

func TestTranslateFirstPairOnlyWhenNotSummingWeights(t *testing.T) {
	mentions := []docsource.Entity{
		{Sen: 0, Ent: "alice"},
		{Sen: 1, Ent: "bob"},
		{Sen: 5, Ent: "bob"},
	}
	g := docsource.Translate(mentions, docsource.TranslateConfig{MaxDistance: 10, SumWeights: false})

	// smallest-distance pair is (alice@0,bob@1), dist 1 -- only it
	// contributes, not the dist-5 pair too.
	edges := g.Edges()
	require.Len(t, edges, 1)
	assert.InDelta(t, math.Exp(-1), float64(edges[0].Weight), 1e-6)
}

func TestTranslateThreeDistinctEntitiesProduceTriangle(t *testing.T) {
	mentions := []docsource.Entity{
		{Sen: 0, Ent: "a"},
		{Sen: 0, Ent: "b"},
		{Sen: 0, Ent: "c"},
	}
	g := docsource.Translate(mentions, docsource.TranslateConfig{MaxDistance: 0, SumWeights: true})
	assert.Equal(t, 3, g.NumNodes())
	assert.Equal(t, 3, g.NumEdges())
}
