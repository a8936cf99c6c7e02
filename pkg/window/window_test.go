package window_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/tvgraph/pkg/sparse"
	"github.com/dd0wney/tvgraph/pkg/tvg"
	"github.com/dd0wney/tvgraph/pkg/window"
)

func mustInsert(t *testing.T, store *tvg.Store, ts int64, edges [][3]float64) *sparse.Graph {
	t.Helper()
	g := sparse.NewGraph(0, 0)
	for _, e := range edges {
		g.Set(uint64(e[0]), uint64(e[1]), float32(e[2]))
	}
	require.NoError(t, store.Insert(g, ts))
	return g
}

func TestWindowZeroWidthRejected(t *testing.T) {
	store := tvg.NewStore(0, 0)
	_, err := window.New(store, 10, 10)
	assert.ErrorIs(t, err, window.ErrZeroWidth)

	_, err = window.New(store, 10, 5)
	assert.ErrorIs(t, err, window.ErrInvertedRange)
}

// Graphs at ts=100 (0,0)=1, ts=200 (0,1)=2, ts=300 (0,2)=3; a ±50 window
// anchored at 200 must aggregate exactly (0,1)=2.
func TestRectSumScenario1(t *testing.T) {
	store := tvg.NewStore(0, 0)
	mustInsert(t, store, 100, [][3]float64{{0, 0, 1}})
	mustInsert(t, store, 200, [][3]float64{{0, 1, 2}})
	mustInsert(t, store, 300, [][3]float64{{0, 2, 3}})

	w, err := window.New(store, -50, 50)
	require.NoError(t, err)
	m := window.NewRectSum(0, 0)
	w.Attach(m)

	w.Update(200)

	edges := m.State().Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, uint64(0), edges[0].Src)
	assert.Equal(t, uint64(1), edges[0].Tgt)
	assert.InDelta(t, 2.0, float64(edges[0].Weight), 1e-6)
}

func TestExpDecayScenario2(t *testing.T) {
	store := tvg.NewStore(0, 0)
	mustInsert(t, store, 0, [][3]float64{{0, 0, 1}})

	w, err := window.New(store, window.NegInf, window.PosInf)
	require.NoError(t, err)
	logBeta := math.Log(0.3)
	m := window.NewExpDecaySum(1, logBeta, 0, 0)
	w.Attach(m)

	w.Update(0)
	assert.InDelta(t, 1.0, float64(m.State().Get(0, 0)), 1e-5)

	w.Update(100)
	assert.InDelta(t, math.Pow(0.3, 100), float64(m.State().Get(0, 0)), 1e-12)

	w.Update(0)
	assert.InDelta(t, 1.0, float64(m.State().Get(0, 0)), 1e-5)
}

func TestExpDecayPathIndependence(t *testing.T) {
	store := tvg.NewStore(0, 0)
	mustInsert(t, store, 0, [][3]float64{{0, 0, 1}})

	logBeta := math.Log(0.9)

	wDirect, _ := window.New(store, window.NegInf, window.PosInf)
	mDirect := window.NewExpDecaySum(1, logBeta, 0, 0)
	wDirect.Attach(mDirect)
	wDirect.Update(0)
	wDirect.Update(10)

	wSteps, _ := window.New(store, window.NegInf, window.PosInf)
	mSteps := window.NewExpDecaySum(1, logBeta, 0, 0)
	wSteps.Attach(mSteps)
	wSteps.Update(0)
	for t := int64(1); t <= 10; t++ {
		wSteps.Update(t)
	}

	assert.InDelta(t, float64(mDirect.State().Get(0, 0)), float64(mSteps.State().Get(0, 0)), 1e-6)
}

func TestRectSumResetRebuildsIdempotently(t *testing.T) {
	store := tvg.NewStore(0, 0)
	mustInsert(t, store, 0, [][3]float64{{1, 2, 5}})
	mustInsert(t, store, 10, [][3]float64{{2, 3, 7}})

	w, _ := window.New(store, -5, 5)
	m := window.NewRectSum(0, 0)
	w.Attach(m)

	w.Update(10)
	first := m.State().Clone()

	w.Reset()
	w.Update(10)
	second := m.State()

	assert.ElementsMatch(t, first.Edges(), second.Edges())
}

func TestEmptyRangeYieldsEmptyAggregate(t *testing.T) {
	store := tvg.NewStore(0, 0)
	mustInsert(t, store, 1000, [][3]float64{{0, 1, 1}})

	w, _ := window.New(store, -10, 10)
	m := window.NewRectSum(0, 0)
	w.Attach(m)

	w.Update(0)
	assert.True(t, m.State().Empty())
}

func TestEdgeCountAndNodeCount(t *testing.T) {
	store := tvg.NewStore(0, 0)
	mustInsert(t, store, 0, [][3]float64{{0, 1, 10}, {1, 2, 20}})

	w, _ := window.New(store, -1, 1)
	edgeCount := window.NewEdgeCount(0, 0)
	nodeCount := window.NewNodeCount(0, 0)
	w.Attach(edgeCount)
	w.Attach(nodeCount)

	w.Update(0)

	assert.InDelta(t, 1.0, float64(edgeCount.State().Get(0, 1)), 1e-9)
	assert.InDelta(t, 1.0, float64(edgeCount.State().Get(1, 2)), 1e-9)
	assert.InDelta(t, 1.0, float64(nodeCount.State().Get(0)), 1e-9)
	assert.InDelta(t, 1.0, float64(nodeCount.State().Get(1)), 1e-9)
	assert.InDelta(t, 1.0, float64(nodeCount.State().Get(2)), 1e-9)
}

func TestCompositionSharedWindowMultipleMetrics(t *testing.T) {
	store := tvg.NewStore(0, 0)
	mustInsert(t, store, 0, [][3]float64{{0, 1, 4}})
	mustInsert(t, store, 5, [][3]float64{{0, 1, 6}})

	w, _ := window.New(store, -10, 10)
	rect := window.NewRectSum(0, 0)
	decay := window.NewExpDecaySum(1, math.Log(0.5), 0, 0)
	w.Attach(rect)
	w.Attach(decay)

	w.Update(5)
	assert.InDelta(t, 10.0, float64(rect.State().Get(0, 1)), 1e-6)
	// decay: 4*0.5^5 + 6*0.5^0
	want := 4*math.Pow(0.5, 5) + 6
	assert.InDelta(t, want, float64(decay.State().Get(0, 1)), 1e-5)
}
