package window

import "github.com/dd0wney/tvgraph/pkg/sparse"

// EdgeCount is the count-edges Metric: like RectSum, but every
// contributing edge counts as 1 regardless of its source weight.
type EdgeCount struct {
	flags sparse.Flags
	eps   float32
	state *sparse.Graph
}

// NewEdgeCount creates an edge-count metric.
func NewEdgeCount(flags sparse.Flags, eps float32) *EdgeCount {
	return &EdgeCount{flags: flags, eps: eps, state: sparse.NewGraph(flags, eps)}
}

// State returns the current aggregate.
func (m *EdgeCount) State() *sparse.Graph { return m.state }

func (m *EdgeCount) OnAdvance(oldTs, newTs int64) {}

func (m *EdgeCount) OnAdd(g *sparse.Graph) {
	for _, e := range g.Edges() {
		m.state.Add(e.Src, e.Tgt, 1)
	}
}

func (m *EdgeCount) OnEvict(g *sparse.Graph) {
	for _, e := range g.Edges() {
		m.state.Add(e.Src, e.Tgt, -1)
	}
}

func (m *EdgeCount) OnReset() { m.state = sparse.NewGraph(m.flags, m.eps) }

// NodeCount is the count-nodes Metric: every contributing source adds the
// characteristic vector of its node set (each touched node's count
// incremented by 1, regardless of how many edges on that source touch it).
type NodeCount struct {
	flags sparse.Flags
	eps   float32
	state *sparse.Vector
}

// NewNodeCount creates a node-count metric.
func NewNodeCount(flags sparse.Flags, eps float32) *NodeCount {
	return &NodeCount{flags: flags &^ sparse.Directed, eps: eps, state: sparse.NewVector(flags&^sparse.Directed, eps)}
}

// State returns the current aggregate.
func (m *NodeCount) State() *sparse.Vector { return m.state }

func (m *NodeCount) OnAdvance(oldTs, newTs int64) {}

func (m *NodeCount) OnAdd(g *sparse.Graph) {
	for _, n := range g.Nodes() {
		m.state.Add(n, 1)
	}
}

func (m *NodeCount) OnEvict(g *sparse.Graph) {
	for _, n := range g.Nodes() {
		m.state.Add(n, -1)
	}
}

func (m *NodeCount) OnReset() { m.state = sparse.NewVector(m.flags, m.eps) }
