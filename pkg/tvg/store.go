package tvg

import (
	"container/list"
	"sort"

	"github.com/dd0wney/tvgraph/pkg/objectid"
	"github.com/dd0wney/tvgraph/pkg/sparse"
)

// node is one entry in the Store's chronological ordering. Wrapping the
// Graph in a list.Element gives O(1) Next/Prev threading without needing
// next/prev fields on sparse.Graph itself.
type node struct {
	g   *sparse.Graph
	ts  int64
	oid objectid.ID
}

// Store holds an ordered collection of linked *sparse.Graph values sorted
// by (ts, objectid).
type Store struct {
	flags sparse.Flags
	eps   float32
	list  *list.List
	index map[*sparse.Graph]*list.Element
}

// NewStore creates an empty TVG. Insert rejects a graph whose flags differ
// from flags; graphs the Store allocates itself (Compress) use flags/eps.
func NewStore(flags sparse.Flags, eps float32) *Store {
	return &Store{
		flags: flags,
		eps:   eps,
		list:  list.New(),
		index: make(map[*sparse.Graph]*list.Element),
	}
}

// Flags returns the policy imposed on linked graphs.
func (s *Store) Flags() sparse.Flags { return s.flags }

// Len returns the number of linked graphs.
func (s *Store) Len() int { return s.list.Len() }

func oidOf(g *sparse.Graph) objectid.ID {
	if id, ok := g.ObjectID().(objectid.ID); ok {
		return id
	}
	return objectid.None()
}

func chronoLess(tsA int64, oidA objectid.ID, tsB int64, oidB objectid.ID) bool {
	if tsA != tsB {
		return tsA < tsB
	}
	return oidA.Compare(oidB) < 0
}

// Insert links g into the ordering at timestamp ts. Fails if g is already
// linked (to this Store or another) or if g's flags don't match the
// Store's.
func (s *Store) Insert(g *sparse.Graph, ts int64) error {
	if g.Linked() {
		return ErrAlreadyLinked
	}
	if g.Flags() != s.flags {
		return ErrIncompatibleFlags
	}

	oid := oidOf(g)
	var at *list.Element
	for e := s.list.Front(); e != nil; e = e.Next() {
		n := e.Value.(*node)
		if chronoLess(ts, oid, n.ts, n.oid) {
			at = e
			break
		}
	}

	n := &node{g: g, ts: ts, oid: oid}
	var elem *list.Element
	if at == nil {
		elem = s.list.PushBack(n)
	} else {
		elem = s.list.InsertBefore(n, at)
	}
	s.index[g] = elem
	g.Link(ts)
	return nil
}

// Unlink removes g from the ordering. g remains usable by any holder; its
// TVG timestamp is cleared. A no-op if g is not linked into this Store.
func (s *Store) Unlink(g *sparse.Graph) {
	elem, ok := s.index[g]
	if !ok {
		return
	}
	s.list.Remove(elem)
	delete(s.index, g)
	g.Unlink()
}

// LookupGe returns the linked graph with the smallest ts >= ts, if any.
func (s *Store) LookupGe(ts int64) (*sparse.Graph, bool) {
	for e := s.list.Front(); e != nil; e = e.Next() {
		n := e.Value.(*node)
		if n.ts >= ts {
			return n.g, true
		}
	}
	return nil, false
}

// LookupLe returns the linked graph with the largest ts <= ts, if any.
func (s *Store) LookupLe(ts int64) (*sparse.Graph, bool) {
	var best *node
	for e := s.list.Front(); e != nil; e = e.Next() {
		n := e.Value.(*node)
		if n.ts > ts {
			break
		}
		best = n
	}
	if best == nil {
		return nil, false
	}
	return best.g, true
}

// LookupNear returns the linked graph whose ts is closest to ts, ties
// favoring the earlier (<=) graph.
func (s *Store) LookupNear(ts int64) (*sparse.Graph, bool) {
	ge, geOK := s.LookupGe(ts)
	le, leOK := s.LookupLe(ts)
	switch {
	case !geOK && !leOK:
		return nil, false
	case !geOK:
		return le, true
	case !leOK:
		return ge, true
	}
	geTs, _ := ge.Timestamp()
	leTs, _ := le.Timestamp()
	if geTs-ts < ts-leTs {
		return ge, true
	}
	return le, true
}

// Next returns g's chronological successor in this Store.
func (s *Store) Next(g *sparse.Graph) (*sparse.Graph, bool) {
	elem, ok := s.index[g]
	if !ok || elem.Next() == nil {
		return nil, false
	}
	return elem.Next().Value.(*node).g, true
}

// Prev returns g's chronological predecessor in this Store.
func (s *Store) Prev(g *sparse.Graph) (*sparse.Graph, bool) {
	elem, ok := s.index[g]
	if !ok || elem.Prev() == nil {
		return nil, false
	}
	return elem.Prev().Value.(*node).g, true
}

// Graphs returns every linked graph in chronological order.
func (s *Store) Graphs() []*sparse.Graph {
	out := make([]*sparse.Graph, 0, s.list.Len())
	for e := s.list.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*node).g)
	}
	return out
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Compress partitions the time axis into half-open buckets
// [offset+k*step, offset+(k+1)*step) and replaces every set of graphs
// falling into the same bucket by their edge-wise sum, timestamped at the
// bucket's lower bound. step <= 0 means "all into a single bucket"
// anchored at offset.
func (s *Store) Compress(step, offset int64) {
	if s.list.Len() == 0 {
		return
	}

	type elemNode struct {
		elem *list.Element
		n    *node
	}
	var all []elemNode
	for e := s.list.Front(); e != nil; e = e.Next() {
		all = append(all, elemNode{elem: e, n: e.Value.(*node)})
	}

	buckets := make(map[int64]*sparse.Graph)
	var order []int64
	for _, en := range all {
		var bucketStart int64
		if step <= 0 {
			bucketStart = offset
		} else {
			k := floorDiv(en.n.ts-offset, step)
			bucketStart = offset + k*step
		}
		agg, ok := buckets[bucketStart]
		if !ok {
			agg = sparse.NewGraph(s.flags, s.eps)
			buckets[bucketStart] = agg
			order = append(order, bucketStart)
		}
		agg.AddGraph(en.n.g, 1)

		s.list.Remove(en.elem)
		delete(s.index, en.n.g)
		en.n.g.Unlink()
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	for _, ts := range order {
		_ = s.Insert(buckets[ts], ts)
	}
}
