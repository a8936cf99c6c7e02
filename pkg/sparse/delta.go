package sparse

// Delta tracking lets a caller observe the net edge-weight change on a
// Graph since the feature was last enabled or read, without re-summing the
// whole resident graph. Useful for an aggregator that wants to fold only
// what changed on a resident graph instead of re-scanning it in full.

// EnableDelta starts accumulating a net-change delta graph. Re-enabling
// resets any previously accumulated delta.
func (g *Graph) EnableDelta() {
	g.delta = NewGraph(g.flags|Directed, g.eps)
}

// DisableDelta stops accumulating and discards the delta graph.
func (g *Graph) DisableDelta() {
	g.delta = nil
}

// DeltaEnabled reports whether delta tracking is currently active.
func (g *Graph) DeltaEnabled() bool { return g.delta != nil }

// TakeDelta returns the accumulated net-change graph and resets it to
// empty. Returns nil if delta tracking is not enabled.
func (g *Graph) TakeDelta() *Graph {
	if g.delta == nil {
		return nil
	}
	d := g.delta
	g.delta = NewGraph(g.flags|Directed, g.eps)
	return d
}

func (g *Graph) recordDelta(k edgeKey, change float32) {
	if g.delta == nil || change == 0 {
		return
	}
	g.delta.Add(k.Src, k.Tgt, change)
}
