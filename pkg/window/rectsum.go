package window

import "github.com/dd0wney/tvgraph/pkg/sparse"

// RectSum is the rectangular-sum-edges Metric: its state is the
// element-wise sum of every currently contributing source graph's edges.
type RectSum struct {
	flags sparse.Flags
	eps   float32
	state *sparse.Graph
}

// NewRectSum creates a RectSum metric whose aggregate carries flags/eps.
func NewRectSum(flags sparse.Flags, eps float32) *RectSum {
	return &RectSum{flags: flags, eps: eps, state: sparse.NewGraph(flags, eps)}
}

// State returns the current aggregate. The caller must not assume it stays
// valid past the next Add/Evict/Reset.
func (m *RectSum) State() *sparse.Graph { return m.state }

// OnAdvance is a no-op for RectSum: it has no time-dependent scaling.
func (m *RectSum) OnAdvance(oldTs, newTs int64) {}

// OnAdd folds g into the aggregate: state += g.
func (m *RectSum) OnAdd(g *sparse.Graph) { m.state.AddGraph(g, 1) }

// OnEvict removes g's contribution: state -= g.
func (m *RectSum) OnEvict(g *sparse.Graph) { m.state.AddGraph(g, -1) }

// OnReset clears the aggregate to empty.
func (m *RectSum) OnReset() { m.state = sparse.NewGraph(m.flags, m.eps) }
