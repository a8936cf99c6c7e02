package window

import (
	"math"
	"time"

	tvgmetrics "github.com/dd0wney/tvgraph/pkg/metrics"
	"github.com/dd0wney/tvgraph/pkg/sparse"
	"github.com/dd0wney/tvgraph/pkg/tvg"
)

// NegInf and PosInf mark an unbounded left/right offset.
const (
	NegInf = int64(math.MinInt64)
	PosInf = int64(math.MaxInt64)
)

// Metric is attached to a Window and folds the window's symmetric
// difference of entering/leaving source graphs into its own aggregate
// state. OnAdvance is called exactly once per Update, before any
// OnAdd/OnEvict, with the window's previous and new anchor; rectangular
// and count metrics ignore it, the exponential-decay metric uses it to
// rescale its whole aggregate by one scalar multiply.
type Metric interface {
	OnAdvance(oldTs, newTs int64)
	OnAdd(g *sparse.Graph)
	OnEvict(g *sparse.Graph)
	OnReset()
}

// Window is a closed time interval [ts+left, ts+right] anchored at a
// mutable ts, over the ordered graphs of a tvg.Store.
type Window struct {
	store       *tvg.Store
	left, right int64

	ts      int64
	valid   bool // false until the first Update, or after Reset
	sources map[*sparse.Graph]struct{}

	metrics []Metric
	reg     *tvgmetrics.Registry
	label   string
}

// New creates a Window over store with offsets left/right (NegInf/PosInf
// permitted). Fails with ErrInvertedRange if right < left, or ErrZeroWidth
// if left == right (both finite or both infinite collapse to one instant).
func New(store *tvg.Store, left, right int64) (*Window, error) {
	if right < left {
		return nil, ErrInvertedRange
	}
	if right == left {
		return nil, ErrZeroWidth
	}
	return &Window{
		store:   store,
		left:    left,
		right:   right,
		sources: make(map[*sparse.Graph]struct{}),
	}, nil
}

// Attach registers m to receive this Window's future Update/Reset
// notifications, in the order Attach was called.
func (w *Window) Attach(m Metric) {
	w.metrics = append(w.metrics, m)
}

// AttachMetrics routes this Window's Update latency to r under label,
// typically the metric or window name the caller uses to identify it.
func (w *Window) AttachMetrics(r *tvgmetrics.Registry, label string) {
	w.reg = r
	w.label = label
}

// Ts returns the window's current anchor and whether it has ever been set.
func (w *Window) Ts() (int64, bool) { return w.ts, w.valid }

func saturateAdd(t, offset int64) int64 {
	switch offset {
	case NegInf:
		return NegInf
	case PosInf:
		return PosInf
	}
	sum := t + offset
	// overflow guard: same-sign operands whose sum flipped sign saturate.
	if offset > 0 && sum < t {
		return PosInf
	}
	if offset < 0 && sum > t {
		return NegInf
	}
	return sum
}

// Range returns the closed interval bounds [lo,hi] the window covers
// when anchored at t.
func (w *Window) Range(t int64) (lo, hi int64) {
	return saturateAdd(t, w.left), saturateAdd(t, w.right)
}

// sourcesInRange walks the TVG's chronological ordering collecting every
// linked graph with lo <= ts <= hi, using Store.LookupGe + Next for O(1)
// stepping rather than a full scan.
func (w *Window) sourcesInRange(lo, hi int64) []*sparse.Graph {
	g, ok := w.store.LookupGe(lo)
	if !ok {
		return nil
	}
	var out []*sparse.Graph
	for ok {
		ts, _ := g.Timestamp()
		if ts > hi {
			break
		}
		out = append(out, g)
		g, ok = w.store.Next(g)
	}
	return out
}

// Update advances the window's anchor to newTs. It computes the symmetric
// difference between the previous source set and the new one, then
// notifies every attached Metric: first OnAdvance(oldTs, newTs) for each
// metric, then OnAdd for every newly entering source and OnEvict for every
// newly leaving one, in attachment order, so the symmetric-difference list
// is traversed once no matter how many metrics are attached. If the window
// is invalid
// (never updated, or just Reset), or newTs is earlier than the current
// anchor, every attached metric is first sent OnReset and the new source
// set is treated as entirely "entering".
func (w *Window) Update(newTs int64) {
	if w.reg != nil {
		start := time.Now()
		defer func() { w.reg.RecordWindowUpdate(w.label, time.Since(start)) }()
	}

	lo, hi := w.Range(newTs)
	newSources := w.sourcesInRange(lo, hi)

	oldTs := newTs
	oldSet := w.sources
	if w.valid && newTs >= w.ts {
		oldTs = w.ts
	} else {
		for _, m := range w.metrics {
			m.OnReset()
		}
		oldSet = make(map[*sparse.Graph]struct{})
	}

	newSet := make(map[*sparse.Graph]struct{}, len(newSources))
	for _, g := range newSources {
		newSet[g] = struct{}{}
	}

	var entering, leaving []*sparse.Graph
	for _, g := range newSources {
		if _, was := oldSet[g]; !was {
			entering = append(entering, g)
		}
	}
	for g := range oldSet {
		if _, is := newSet[g]; !is {
			leaving = append(leaving, g)
		}
	}

	for _, m := range w.metrics {
		m.OnAdvance(oldTs, newTs)
	}
	for _, g := range entering {
		for _, m := range w.metrics {
			m.OnAdd(g)
		}
	}
	for _, g := range leaving {
		for _, m := range w.metrics {
			m.OnEvict(g)
		}
	}

	w.ts = newTs
	w.valid = true
	w.sources = newSet
}

// Reset marks the window's state invalid; the next Update rebuilds every
// attached Metric from scratch instead of diffing against the prior source
// set.
func (w *Window) Reset() {
	w.valid = false
	w.sources = make(map[*sparse.Graph]struct{})
}

// Sources returns the graphs currently contributing to the window, in no
// particular order.
func (w *Window) Sources() []*sparse.Graph {
	out := make([]*sparse.Graph, 0, len(w.sources))
	for g := range w.sources {
		out = append(out, g)
	}
	return out
}
