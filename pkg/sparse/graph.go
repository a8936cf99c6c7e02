package sparse

import (
	"math"
	"sort"

	"github.com/dd0wney/tvgraph/pkg/pools"
)

// edgeKey identifies a directed (src,tgt) edge slot. For undirected graphs
// storage always normalises to the canonical order (min,max) before
// touching the store, so (a,b) and (b,a) coalesce onto one entry.
type edgeKey struct {
	Src, Tgt uint64
}

func hashEdgeKey(k edgeKey) uint64 {
	return splitmix64(k.Src) ^ (splitmix64(k.Tgt) * 0x9E3779B1)
}

func lessEdgeKey(a, b edgeKey) bool {
	if a.Src != b.Src {
		return a.Src < b.Src
	}
	return a.Tgt < b.Tgt
}

func equalEdgeKey(a, b edgeKey) bool { return a == b }

// Graph is a sparse mapping from ordered (src,tgt) index pairs to float32
// weight.
type Graph struct {
	header
	s     *store[edgeKey]
	ts    *int64 // present for graphs linked into a TVG
	oid   any    // opaque object id for graphs loaded from a document store; see pkg/objectid
	delta *Graph // net-change tracker; nil unless EnableDelta was called
}

// NewGraph creates an empty graph. flags may combine Nonzero, Positive and
// Directed; eps <= 0 uses DefaultEps.
func NewGraph(flags Flags, eps float32) *Graph {
	return &Graph{
		header: newHeader(flags, eps),
		s:      newStore[edgeKey](hashEdgeKey, lessEdgeKey, equalEdgeKey),
	}
}

func (g *Graph) canon(src, tgt uint64) edgeKey {
	if g.flags.Has(Directed) || src <= tgt {
		return edgeKey{src, tgt}
	}
	return edgeKey{tgt, src}
}

// Get returns the weight of edge (src,tgt), or 0 if absent.
func (g *Graph) Get(src, tgt uint64) float32 {
	w, _ := g.s.get(g.canon(src, tgt))
	return w
}

// Has reports whether edge (src,tgt) has a stored entry.
func (g *Graph) Has(src, tgt uint64) bool {
	_, ok := g.s.get(g.canon(src, tgt))
	return ok
}

// NumEdges returns the number of stored (undirected: coalesced) edges.
func (g *Graph) NumEdges() int { return g.s.len() }

// Empty reports whether the graph has no edges.
func (g *Graph) Empty() bool { return g.s.len() == 0 }

func (g *Graph) applyOne(src, tgt uint64, w float32) {
	k := g.canon(src, tgt)
	before, _ := g.s.get(k)
	if g.header.keep(w) {
		g.s.put(k, w)
	} else if _, ok := g.s.get(k); ok {
		g.s.delete(k)
		w = 0
	} else {
		w = 0
	}
	g.recordDelta(k, w-before)
	g.bump()
}

// Set stores weight w on edge (src,tgt).
func (g *Graph) Set(src, tgt uint64, w float32) { g.applyOne(src, tgt, w) }

// Add adds w to edge (src,tgt)'s current weight.
func (g *Graph) Add(src, tgt uint64, w float32) { g.applyOne(src, tgt, g.Get(src, tgt)+w) }

// Sub subtracts w from edge (src,tgt)'s current weight.
func (g *Graph) Sub(src, tgt uint64, w float32) { g.applyOne(src, tgt, g.Get(src, tgt)-w) }

// SetMany is the bulk form of Set over parallel srcs/tgts/weights arrays.
// A nil weights array defaults every weight to 1.
func (g *Graph) SetMany(srcs, tgts []uint64, weights []float32) error {
	if len(tgts) != len(srcs) || (weights != nil && len(weights) != len(srcs)) {
		return ErrLengthMismatch
	}
	for i := range srcs {
		g.applyOne(srcs[i], tgts[i], weightAt(weights, i))
	}
	return nil
}

// AddMany is the bulk form of Add.
func (g *Graph) AddMany(srcs, tgts []uint64, weights []float32) error {
	if len(tgts) != len(srcs) || (weights != nil && len(weights) != len(srcs)) {
		return ErrLengthMismatch
	}
	for i := range srcs {
		g.applyOne(srcs[i], tgts[i], g.Get(srcs[i], tgts[i])+weightAt(weights, i))
	}
	return nil
}

// SubMany is the bulk form of Sub.
func (g *Graph) SubMany(srcs, tgts []uint64, weights []float32) error {
	if len(tgts) != len(srcs) || (weights != nil && len(weights) != len(srcs)) {
		return ErrLengthMismatch
	}
	for i := range srcs {
		g.applyOne(srcs[i], tgts[i], g.Get(srcs[i], tgts[i])-weightAt(weights, i))
	}
	return nil
}

// DelMany is the bulk form of Del.
func (g *Graph) DelMany(srcs, tgts []uint64) error {
	if len(tgts) != len(srcs) {
		return ErrLengthMismatch
	}
	for i := range srcs {
		g.Del(srcs[i], tgts[i])
	}
	return nil
}

// Del removes edge (src,tgt), if present.
func (g *Graph) Del(src, tgt uint64) {
	k := g.canon(src, tgt)
	before, ok := g.s.get(k)
	if !ok {
		return
	}
	g.s.delete(k)
	g.recordDelta(k, -before)
	g.bump()
}

// Edge is a single (src,tgt,weight) triple as returned by Edges/AdjacentEdges.
type Edge struct {
	Src, Tgt uint64
	Weight   float32
}

// Edges returns every edge in ascending (src,tgt) order. For undirected
// graphs each coalesced entry is emitted once in canonical (min,max) order.
func (g *Graph) Edges() []Edge {
	es := g.s.entries()
	out := make([]Edge, len(es))
	for i, e := range es {
		out[i] = Edge{Src: e.key.Src, Tgt: e.key.Tgt, Weight: e.weight}
	}
	return out
}

// AdjacentEdges returns edges touching src: outgoing (src,*) for directed
// graphs, and both (src,*) and (*,src) for undirected graphs — each emitted
// with src first regardless of canonical storage order.
func (g *Graph) AdjacentEdges(src uint64) []Edge {
	var out []Edge
	if g.flags.Has(Directed) {
		g.s.each(func(k edgeKey, w float32) {
			if k.Src == src {
				out = append(out, Edge{Src: k.Src, Tgt: k.Tgt, Weight: w})
			}
		})
	} else {
		g.s.each(func(k edgeKey, w float32) {
			switch src {
			case k.Src:
				out = append(out, Edge{Src: k.Src, Tgt: k.Tgt, Weight: w})
			case k.Tgt:
				out = append(out, Edge{Src: k.Tgt, Tgt: k.Src, Weight: w})
			}
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tgt < out[j].Tgt })
	return out
}

// Nodes returns the sorted unique union of all edge endpoints.
func (g *Graph) Nodes() []uint64 {
	seen := pools.GetNodeSet()
	defer pools.PutNodeSet(seen)
	g.s.each(func(k edgeKey, _ float32) {
		seen[k.Src] = struct{}{}
		seen[k.Tgt] = struct{}{}
	})
	out := make([]uint64, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NumNodes returns len(Nodes()).
func (g *Graph) NumNodes() int { return len(g.Nodes()) }

// InDegree returns a vector mapping node -> number of incoming edges.
func (g *Graph) InDegree() *Vector { return g.degreeOrWeight(false, false) }

// OutDegree returns a vector mapping node -> number of outgoing edges.
func (g *Graph) OutDegree() *Vector { return g.degreeOrWeight(true, false) }

// InWeight returns a vector mapping node -> sum of incoming edge weights.
func (g *Graph) InWeight() *Vector { return g.degreeOrWeight(false, true) }

// OutWeight returns a vector mapping node -> sum of outgoing edge weights.
func (g *Graph) OutWeight() *Vector { return g.degreeOrWeight(true, true) }

func (g *Graph) degreeOrWeight(outgoing, weighted bool) *Vector {
	out := NewVector(0, g.eps)
	accumulate := func(node uint64, w float32) {
		if weighted {
			out.Add(node, w)
		} else {
			out.Add(node, 1)
		}
	}
	if g.flags.Has(Directed) {
		g.s.each(func(k edgeKey, w float32) {
			if outgoing {
				accumulate(k.Src, w)
			} else {
				accumulate(k.Tgt, w)
			}
		})
	} else {
		// undirected: every edge contributes to both endpoints' degree/weight
		g.s.each(func(k edgeKey, w float32) {
			accumulate(k.Src, w)
			if k.Tgt != k.Src {
				accumulate(k.Tgt, w)
			}
		})
	}
	return out
}

// anomaly computes, for each node, the signed difference between its own
// metric (degree or weight) and the mean of its neighbors' metric, divided
// by the standard deviation of the neighbors' metric. Zero-variance
// neighborhoods yield zero.
func (g *Graph) anomaly(weighted bool) *Vector {
	own := g.degreeOrWeight(true, weighted)
	out := NewVector(0, g.eps)
	for _, node := range g.Nodes() {
		adj := g.AdjacentEdges(node)
		neighbors := pools.GetUint64s(len(adj))
		for _, e := range adj {
			neighbors = append(neighbors, e.Tgt)
		}
		if len(neighbors) == 0 {
			pools.PutUint64s(neighbors)
			continue
		}
		var sum, sumSq float64
		for _, n := range neighbors {
			v := float64(own.Get(n))
			sum += v
			sumSq += v * v
		}
		count := float64(len(neighbors))
		pools.PutUint64s(neighbors)
		mean := sum / count
		variance := sumSq/count - mean*mean
		if variance <= 0 {
			out.Set(node, 0)
			continue
		}
		stddev := math.Sqrt(variance)
		z := (float64(own.Get(node)) - mean) / stddev
		out.Set(node, float32(z))
	}
	return out
}

// DegreeAnomaly returns the degree-anomaly score vector.
func (g *Graph) DegreeAnomaly() *Vector { return g.anomaly(false) }

// WeightAnomaly returns the weight-anomaly score vector.
func (g *Graph) WeightAnomaly() *Vector { return g.anomaly(true) }

// FilterNodes returns a new graph containing exactly the edges of g that
// have at least one endpoint in keep.
func (g *Graph) FilterNodes(keep map[uint64]struct{}) *Graph {
	out := NewGraph(g.flags, g.eps)
	for _, e := range g.Edges() {
		_, keepSrc := keep[e.Src]
		_, keepTgt := keep[e.Tgt]
		if keepSrc || keepTgt {
			out.Set(e.Src, e.Tgt, e.Weight)
		}
	}
	return out
}

// MulVector computes the matrix-vector product g·v, treating g as a square
// matrix over its implicit node set.
func (g *Graph) MulVector(v *Vector) *Vector {
	out := NewVector(0, g.eps)
	g.s.each(func(k edgeKey, w float32) {
		out.Add(k.Src, w*v.Get(k.Tgt))
		if !g.flags.Has(Directed) && k.Tgt != k.Src {
			out.Add(k.Tgt, w*v.Get(k.Src))
		}
	})
	return out
}

// AddGraph accumulates scale*other into g in place: g += scale·other.
func (g *Graph) AddGraph(other *Graph, scale float32) {
	for _, e := range other.Edges() {
		g.Add(e.Src, e.Tgt, scale*e.Weight)
	}
}

// SubGraph accumulates -scale*other into g in place: g -= scale·other.
func (g *Graph) SubGraph(other *Graph, scale float32) {
	g.AddGraph(other, -scale)
}

// MulConst scales every edge weight by c in place, atomically applying the
// zero/positive policy as part of the scale.
func (g *Graph) MulConst(c float32) {
	if g.s.len() == 0 {
		g.bump()
		return
	}
	for _, e := range g.s.entries() {
		w := e.weight * c
		if g.header.keep(w) {
			g.s.put(e.key, w)
			g.recordDelta(e.key, w-e.weight)
		} else {
			g.s.delete(e.key)
			g.recordDelta(e.key, -e.weight)
		}
	}
	g.bump()
}

// Norm returns the Euclidean norm over all edge weights, memoised per
// revision.
func (g *Graph) Norm() float64 {
	g.refreshMemo()
	if g.haveNorm {
		return g.memoNorm
	}
	var acc float64
	g.s.each(func(_ edgeKey, w float32) {
		acc += float64(w) * float64(w)
	})
	g.memoNorm = math.Sqrt(acc)
	g.haveNorm = true
	return g.memoNorm
}

// Dot returns the edge-wise dot product with other. Both graphs are read
// through their own directed/undirected policy, so a shared (a,b) slot
// contributes once.
func (g *Graph) Dot(other *Graph) float64 {
	a, b := g, other
	if a.s.len() > b.s.len() {
		a, b = b, a
	}
	var acc float64
	a.s.each(func(k edgeKey, w float32) {
		acc += float64(w) * float64(b.Get(k.Src, k.Tgt))
	})
	return acc
}

// SubNorm returns ‖self − other‖₂ over edge weights without materialising
// the difference graph.
func (g *Graph) SubNorm(other *Graph) float64 {
	var acc float64
	seen := make(map[edgeKey]bool, g.s.len())
	g.s.each(func(k edgeKey, w float32) {
		seen[k] = true
		d := float64(w) - float64(other.Get(k.Src, k.Tgt))
		acc += d * d
	})
	other.s.each(func(k edgeKey, ow float32) {
		if seen[k] || seen[edgeKey{k.Tgt, k.Src}] {
			return
		}
		acc += float64(ow) * float64(ow)
	})
	return math.Sqrt(acc)
}

// Timestamp returns the graph's TVG timestamp and whether it is linked.
func (g *Graph) Timestamp() (int64, bool) {
	if g.ts == nil {
		return 0, false
	}
	return *g.ts, true
}

// Linked reports whether the graph currently carries a TVG timestamp.
func (g *Graph) Linked() bool { return g.ts != nil }

// Link attaches ts as the graph's TVG timestamp. Used by pkg/tvg.Store when
// inserting a graph into the ordering; pkg/tvg is responsible for enforcing
// the "linked into at most one TVG" invariant.
func (g *Graph) Link(ts int64) { g.ts = &ts }

// Unlink clears the graph's TVG timestamp, leaving the graph itself
// otherwise unchanged and still usable by any holder.
func (g *Graph) Unlink() { g.ts = nil }

// ObjectID returns the opaque document-store identifier, if any.
func (g *Graph) ObjectID() any { return g.oid }

// SetObjectID attaches an opaque document-store identifier (pkg/objectid.ID).
func (g *Graph) SetObjectID(oid any) { g.oid = oid }

// ClearEdges drops every stored edge while preserving the header: flags,
// eps, timestamp and objectid survive, so a graph linked into a TVG keeps
// its place in the ordering. Used by cache eviction; a later access
// re-materialises the edges from the document source.
func (g *Graph) ClearEdges() {
	if g.s.len() == 0 {
		return
	}
	g.s = newStore[edgeKey](hashEdgeKey, lessEdgeKey, equalEdgeKey)
	g.bump()
}

// MemoryUsage estimates the graph's resident memory in bytes, memoised per
// revision.
func (g *Graph) MemoryUsage() uint64 {
	g.refreshMemo()
	if g.haveMemory {
		return g.memoMemory
	}
	const perEdge = 24
	g.memoMemory = uint64(g.s.len())*perEdge + 96
	g.haveMemory = true
	return g.memoMemory
}

// Clone returns a deep, independent copy of g. The clone is unlinked from
// any TVG and carries no timestamp/objectid.
func (g *Graph) Clone() *Graph {
	return &Graph{header: g.header, s: g.s.clone()}
}
