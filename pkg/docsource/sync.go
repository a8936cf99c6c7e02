package docsource

import (
	"errors"
	"time"

	"github.com/dd0wney/tvgraph/pkg/cache"
	"github.com/dd0wney/tvgraph/pkg/logging"
	"github.com/dd0wney/tvgraph/pkg/metrics"
	"github.com/dd0wney/tvgraph/pkg/objectid"
	"github.com/dd0wney/tvgraph/pkg/sparse"
	"github.com/dd0wney/tvgraph/pkg/tvg"
	"github.com/dd0wney/tvgraph/pkg/validation"
)

// ErrIO wraps a Source failure surfaced to the caller; no partial graph
// is linked when this occurs.
var ErrIO = errors.New("docsource: I/O failure")

// FrontierFlag marks a resident graph's chronological neighbor as not yet
// known.
type FrontierFlag uint8

const (
	// LoadNext means the graph's chronological successor may exist in
	// the document source but hasn't been fetched yet.
	LoadNext FrontierFlag = 1 << iota
	// LoadPrev means the graph's chronological predecessor may exist in
	// the document source but hasn't been fetched yet.
	LoadPrev
)

// Has reports whether all bits of want are set.
func (f FrontierFlag) Has(want FrontierFlag) bool { return f&want == want }

// SyncConfig controls Sync's fetch batching and article translation.
type SyncConfig struct {
	BatchSize int
	Translate TranslateConfig
}

// bound identifies the last-seen position of a fetch in one direction.
type bound struct {
	time int64
	id   objectid.ID
}

// Sync materialises graphs from the document source on demand: a lookup
// or iteration step that reaches an unresident or frontier-flagged range
// triggers a bounded fetch against the Source, and each fetched article is
// translated to a Graph and linked into the Store.
type Sync struct {
	source Source
	store  *tvg.Store
	cfg    SyncConfig

	frontier map[*sparse.Graph]FrontierFlag
	fetches  int

	graphCache *cache.GraphCache
	evicted    map[*sparse.Graph]struct{}

	log     logging.Logger
	metrics *metrics.Registry
}

// AttachLogger replaces the Sync's logger (the process default otherwise).
func (s *Sync) AttachLogger(l logging.Logger) {
	s.log = l
}

// AttachMetrics routes this Sync's fetch counters and durations to r.
func (s *Sync) AttachMetrics(r *metrics.Registry) {
	s.metrics = r
}

// NewSync creates a Sync wiring source into store under cfg. BatchSize is
// clamped into the supported fetch range.
func NewSync(source Source, store *tvg.Store, cfg SyncConfig) *Sync {
	cfg.BatchSize = validation.ClampInt(
		validation.DefaultOrInt(cfg.BatchSize, 1),
		validation.MinBatchSize, validation.MaxBatchSize)
	return &Sync{
		source:   source,
		store:    store,
		cfg:      cfg,
		frontier: make(map[*sparse.Graph]FrontierFlag),
		evicted:  make(map[*sparse.Graph]struct{}),
		log:      logging.DefaultLogger(),
	}
}

// EnableCache bounds the set of fully resident graphs by gc's byte budget.
// An entry the cache evicts loses its materialised edges but keeps its
// timestamp and objectid, so the TVG ordering stays intact; the next access
// through this Sync re-materialises it from the document source.
func (s *Sync) EnableCache(gc *cache.GraphCache) {
	s.graphCache = gc
	gc.OnEvict(func(_ cache.GraphKey, g *sparse.Graph) {
		g.ClearEdges()
		s.evicted[g] = struct{}{}
	})
}

func graphKey(g *sparse.Graph) cache.GraphKey {
	ts, _ := g.Timestamp()
	return cache.GraphKey{TS: ts, OID: oidOf(g)}
}

// touch records an access to g's contents for LRU purposes and, if g was
// previously evicted, re-materialises its edges from the source before
// returning. Access to the header alone (ordering, timestamps) never
// touches the cache.
func (s *Sync) touch(g *sparse.Graph) error {
	if g == nil {
		return nil
	}
	if _, gone := s.evicted[g]; gone {
		ts, _ := g.Timestamp()
		loaded, err := s.translate(Article{ID: oidOf(g), Time: ts})
		if err != nil {
			return err
		}
		g.AddGraph(loaded, 1)
		delete(s.evicted, g)
	}
	if s.graphCache != nil {
		key := graphKey(g)
		if _, ok := s.graphCache.Get(key); !ok {
			s.graphCache.Put(key, g)
		}
	}
	return nil
}

// Pin protects g from cache eviction until Unpin; a no-op when no cache is
// enabled. Metrics and callers holding a graph across other lookups pin it
// so its edges stay materialised.
func (s *Sync) Pin(g *sparse.Graph) {
	if s.graphCache != nil {
		s.graphCache.Pin(graphKey(g))
	}
}

// Unpin releases one Pin on g.
func (s *Sync) Unpin(g *sparse.Graph) {
	if s.graphCache != nil {
		s.graphCache.Unpin(graphKey(g))
	}
}

// FetchCount returns the number of FindArticles batch calls issued so
// far.
func (s *Sync) FetchCount() int { return s.fetches }

func oidOf(g *sparse.Graph) objectid.ID {
	if id, ok := g.ObjectID().(objectid.ID); ok {
		return id
	}
	return objectid.None()
}

func (s *Sync) translate(a Article) (*sparse.Graph, error) {
	cur, err := s.source.FindEntities(a.ID, true)
	if err != nil {
		return nil, errors.Join(ErrIO, err)
	}
	defer cur.Close()

	var mentions []Entity
	for {
		e, ok := cur.Next()
		if !ok {
			break
		}
		mentions = append(mentions, e)
	}
	return Translate(mentions, s.cfg.Translate), nil
}

// fetchForward issues one FindArticles batch strictly after after, links
// each translated article into the store, and marks the last linked
// graph's frontier with LoadNext iff the batch came back full (meaning
// more documents may still exist beyond it).
func (s *Sync) fetchForward(after bound) ([]*sparse.Graph, error) {
	start := time.Now()
	timer := logging.StartTimer(s.log, "document-source fetch",
		logging.Operation("fetch_forward"), logging.Int64("after_ts", after.time))
	filter := TimeFilter{Op: OpGT, Time: after.time, TieBreakID: after.id, HasTieBreak: !after.id.IsNone()}
	cur, err := s.source.FindArticles(filter, Sort{TimeOrder: Ascending, IDOrder: Ascending}, s.cfg.BatchSize)
	s.fetches++
	if s.metrics != nil {
		s.metrics.RecordDocSourceFetch("forward", time.Since(start))
	}
	if err != nil {
		timer.EndError(err)
		return nil, errors.Join(ErrIO, err)
	}
	timer.EndWithLevel(logging.DebugLevel, "document-source fetch complete")
	defer cur.Close()

	var articles []Article
	for {
		a, ok := cur.Next()
		if !ok {
			break
		}
		articles = append(articles, a)
	}

	out := make([]*sparse.Graph, 0, len(articles))
	for _, a := range articles {
		g, err := s.translate(a)
		if err != nil {
			return nil, err
		}
		g.SetObjectID(a.ID)
		if err := s.store.Insert(g, a.Time); err != nil && !errors.Is(err, tvg.ErrAlreadyLinked) {
			return nil, err
		}
		if err := s.touch(g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if len(articles) == s.cfg.BatchSize && len(out) > 0 {
		s.frontier[out[len(out)-1]] |= LoadNext
	}
	if s.metrics != nil {
		s.metrics.RecordDocSourceArticles(len(out))
	}
	return out, nil
}

// fetchBackward is fetchForward's mirror for the backward direction.
func (s *Sync) fetchBackward(before bound) ([]*sparse.Graph, error) {
	start := time.Now()
	timer := logging.StartTimer(s.log, "document-source fetch",
		logging.Operation("fetch_backward"), logging.Int64("before_ts", before.time))
	filter := TimeFilter{Op: OpLT, Time: before.time, TieBreakID: before.id, HasTieBreak: !before.id.IsNone()}
	cur, err := s.source.FindArticles(filter, Sort{TimeOrder: Descending, IDOrder: Descending}, s.cfg.BatchSize)
	s.fetches++
	if s.metrics != nil {
		s.metrics.RecordDocSourceFetch("backward", time.Since(start))
	}
	if err != nil {
		timer.EndError(err)
		return nil, errors.Join(ErrIO, err)
	}
	timer.EndWithLevel(logging.DebugLevel, "document-source fetch complete")
	defer cur.Close()

	var articles []Article
	for {
		a, ok := cur.Next()
		if !ok {
			break
		}
		articles = append(articles, a)
	}

	out := make([]*sparse.Graph, 0, len(articles))
	for _, a := range articles {
		g, err := s.translate(a)
		if err != nil {
			return nil, err
		}
		g.SetObjectID(a.ID)
		if err := s.store.Insert(g, a.Time); err != nil && !errors.Is(err, tvg.ErrAlreadyLinked) {
			return nil, err
		}
		if err := s.touch(g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if len(articles) == s.cfg.BatchSize && len(out) > 0 {
		s.frontier[out[len(out)-1]] |= LoadPrev
	}
	if s.metrics != nil {
		s.metrics.RecordDocSourceArticles(len(out))
	}
	return out, nil
}

// LookupGe resolves the smallest-ts resident graph with ts >= ts,
// fetching forward from the source if nothing resident covers it yet.
func (s *Sync) LookupGe(ts int64) (*sparse.Graph, bool, error) {
	if g, ok := s.store.LookupGe(ts); ok {
		return g, true, s.touch(g)
	}
	if _, err := s.fetchForward(bound{time: ts - 1, id: objectid.None()}); err != nil {
		return nil, false, err
	}
	g, ok := s.store.LookupGe(ts)
	if !ok {
		return nil, false, nil
	}
	return g, true, s.touch(g)
}

// LookupLe is LookupGe's mirror, fetching backward.
func (s *Sync) LookupLe(ts int64) (*sparse.Graph, bool, error) {
	if g, ok := s.store.LookupLe(ts); ok {
		return g, true, s.touch(g)
	}
	if _, err := s.fetchBackward(bound{time: ts + 1, id: objectid.None()}); err != nil {
		return nil, false, err
	}
	g, ok := s.store.LookupLe(ts)
	if !ok {
		return nil, false, nil
	}
	return g, true, s.touch(g)
}

// LookupNear resolves the resident graph whose ts is closest to ts,
// fetching in both directions first so the comparison sees the nearest
// candidates the source has on either side.
func (s *Sync) LookupNear(ts int64) (*sparse.Graph, bool, error) {
	if _, ok := s.store.LookupGe(ts); !ok {
		if _, err := s.fetchForward(bound{time: ts - 1, id: objectid.None()}); err != nil {
			return nil, false, err
		}
	}
	if _, ok := s.store.LookupLe(ts); !ok {
		if _, err := s.fetchBackward(bound{time: ts + 1, id: objectid.None()}); err != nil {
			return nil, false, err
		}
	}
	g, ok := s.store.LookupNear(ts)
	if !ok {
		return nil, false, nil
	}
	return g, true, s.touch(g)
}

// Next returns g's chronological successor, fetching forward first if g
// sits at an unresolved LoadNext boundary.
func (s *Sync) Next(g *sparse.Graph) (*sparse.Graph, bool, error) {
	if s.frontier[g].Has(LoadNext) {
		ts, _ := g.Timestamp()
		if _, err := s.fetchForward(bound{time: ts, id: oidOf(g)}); err != nil {
			return nil, false, err
		}
		delete(s.frontier, g)
	}
	nxt, ok := s.store.Next(g)
	if !ok {
		return nil, false, nil
	}
	return nxt, true, s.touch(nxt)
}

// Prev is Next's mirror.
func (s *Sync) Prev(g *sparse.Graph) (*sparse.Graph, bool, error) {
	if s.frontier[g].Has(LoadPrev) {
		ts, _ := g.Timestamp()
		if _, err := s.fetchBackward(bound{time: ts, id: oidOf(g)}); err != nil {
			return nil, false, err
		}
		delete(s.frontier, g)
	}
	prv, ok := s.store.Prev(g)
	if !ok {
		return nil, false, nil
	}
	return prv, true, s.touch(prv)
}
