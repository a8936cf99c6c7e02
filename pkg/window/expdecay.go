package window

import (
	"math"

	"github.com/dd0wney/tvgraph/pkg/sparse"
)

// ExpDecaySum is the exponential-decay-sum-edges Metric. At anchor t its
// aggregate equals Σ weight·β^(t−g.ts)·g over every contributing source g,
// where β = exp(logBeta). Rather than re-accumulating from history on every
// Update, the common factor is re-multiplied in place, which keeps the
// result independent of whether an anchor was reached in one jump or many.
type ExpDecaySum struct {
	weight  float64
	logBeta float64
	flags   sparse.Flags
	eps     float32

	ts    int64
	state *sparse.Graph
}

// NewExpDecaySum creates an exponential-decay metric with the given
// weight (>= 0) and logBeta (<= 0, so β = exp(logBeta) in (0,1]).
func NewExpDecaySum(weight, logBeta float64, flags sparse.Flags, eps float32) *ExpDecaySum {
	return &ExpDecaySum{
		weight:  weight,
		logBeta: logBeta,
		flags:   flags,
		eps:     eps,
		state:   sparse.NewGraph(flags, eps),
	}
}

// NewExpDecaySumNormalized creates the "normalised" (smoothing) variant
// with weight fixed at 1-β, so that a constant input converges to the
// input value itself.
func NewExpDecaySumNormalized(logBeta float64, flags sparse.Flags, eps float32) *ExpDecaySum {
	beta := math.Exp(logBeta)
	return NewExpDecaySum(1-beta, logBeta, flags, eps)
}

// State returns the current aggregate.
func (m *ExpDecaySum) State() *sparse.Graph { return m.state }

func (m *ExpDecaySum) beta() float64 { return math.Exp(m.logBeta) }

// OnAdvance rescales the whole aggregate by β^(newTs−oldTs), a single
// scalar multiply, then records newTs as the anchor the next OnAdd/OnEvict
// terms are computed against.
func (m *ExpDecaySum) OnAdvance(oldTs, newTs int64) {
	if newTs != oldTs {
		factor := math.Pow(m.beta(), float64(newTs-oldTs))
		m.state.MulConst(float32(factor))
	}
	m.ts = newTs
}

// term computes weight·β^(ts−g.ts) at the metric's current anchor.
func (m *ExpDecaySum) term(g *sparse.Graph) float32 {
	gts, _ := g.Timestamp()
	return float32(m.weight * math.Pow(m.beta(), float64(m.ts-gts)))
}

// OnAdd adds weight·β^(ts−g.ts)·g to the aggregate.
func (m *ExpDecaySum) OnAdd(g *sparse.Graph) { m.state.AddGraph(g, m.term(g)) }

// OnEvict subtracts the corresponding term for a leaving source.
func (m *ExpDecaySum) OnEvict(g *sparse.Graph) { m.state.AddGraph(g, -m.term(g)) }

// OnReset clears the aggregate to empty; the next Update rebuilds it from
// the full new source set.
func (m *ExpDecaySum) OnReset() { m.state = sparse.NewGraph(m.flags, m.eps) }
