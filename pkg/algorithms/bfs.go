package algorithms

import (
	"container/heap"

	"github.com/dd0wney/tvgraph/pkg/pools"
	"github.com/dd0wney/tvgraph/pkg/sparse"
)

// Signal is returned by a Visitor to control traversal.
type Signal int

const (
	// Continue tells the traversal to keep expanding past the visited node.
	Continue Signal = iota
	// Stop tells the traversal to halt immediately without expanding further.
	Stop
)

// Visitor is called once per node dequeued by BFSHops/BFSWeight, in
// visitation order, with the accumulated weight (hop count, for BFSHops),
// hop count, the predecessor node on the discovering path (pred == nil for
// the source), and the node itself. Returning Stop halts the traversal
// immediately after this call.
type Visitor func(accumulatedWeight float64, hops int, pred *uint64, node uint64) Signal

type hopEntry struct {
	node uint64
	hops int
}

// BFSHops performs an unweighted breadth-first traversal from source,
// visiting each reachable node exactly once in nondecreasing hop order
// (ties broken by discovery order within a hop), up to maxHops (maxHops <=
// 0 means unbounded). The visitor callback replaces a fixed result struct
// so both k-hop neighbourhoods and stop-at-first-match queries share one
// traversal.
func BFSHops(g *sparse.Graph, source uint64, maxHops int, visit Visitor) {
	visited := pools.GetNodeSet()
	defer pools.PutNodeSet(visited)
	visited[source] = struct{}{}
	if visit(0, 0, nil, source) == Stop {
		return
	}

	queue := []hopEntry{{node: source, hops: 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if maxHops > 0 && cur.hops >= maxHops {
			continue
		}
		nextHops := cur.hops + 1

		for _, e := range g.AdjacentEdges(cur.node) {
			if _, seen := visited[e.Tgt]; seen {
				continue
			}
			visited[e.Tgt] = struct{}{}
			pred := cur.node
			if visit(float64(nextHops), nextHops, &pred, e.Tgt) == Stop {
				return
			}
			queue = append(queue, hopEntry{node: e.Tgt, hops: nextHops})
		}
	}
}

type weightItem struct {
	node uint64
	dist float64
	hops int
	pred *uint64
	seq  int // insertion order, breaks ties in dist
}

type weightQueue []weightItem

func (q weightQueue) Len() int { return len(q) }
func (q weightQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].seq < q[j].seq
}
func (q weightQueue) Swap(i, j int)    { q[i], q[j] = q[j], q[i] }
func (q *weightQueue) Push(x any) { *q = append(*q, x.(weightItem)) }
func (q *weightQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// BFSWeight performs a Dijkstra-like traversal from source, visiting each
// reachable node exactly once in nondecreasing accumulated-edge-weight
// order from the source along the cheapest known path (edge weights must
// be non-negative; ties broken by insertion order). maxDist <= 0 means
// unbounded.
func BFSWeight(g *sparse.Graph, source uint64, maxDist float64, visit Visitor) {
	dist := map[uint64]float64{source: 0}
	seq := 0
	pq := &weightQueue{{node: source, dist: 0, hops: 0, seq: seq}}
	heap.Init(pq)

	visited := pools.GetNodeSet()
	defer pools.PutNodeSet(visited)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(weightItem)
		if _, done := visited[cur.node]; done {
			continue
		}
		if d, ok := dist[cur.node]; ok && cur.dist > d {
			continue
		}
		visited[cur.node] = struct{}{}

		if maxDist > 0 && cur.dist > maxDist {
			continue
		}
		if visit(cur.dist, cur.hops, cur.pred, cur.node) == Stop {
			return
		}

		for _, e := range g.AdjacentEdges(cur.node) {
			if _, done := visited[e.Tgt]; done {
				continue
			}
			nd := cur.dist + float64(e.Weight)
			if maxDist > 0 && nd > maxDist {
				continue
			}
			if old, ok := dist[e.Tgt]; ok && old <= nd {
				continue
			}
			dist[e.Tgt] = nd
			seq++
			pred := cur.node
			heap.Push(pq, weightItem{node: e.Tgt, dist: nd, hops: cur.hops + 1, pred: &pred, seq: seq})
		}
	}
}
