package docsource

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dd0wney/tvgraph/pkg/objectid"
)

type storedArticle struct {
	id       objectid.ID
	time     int64
	entities []Entity
}

// MemSource is an in-memory reference Source implementation, used by
// tests.
// Document ids are generated with google/uuid; a uuid is 16 bytes and
// objectid.ID's oid payload is 12, so MemSource keeps the first 12 bytes
// of each generated uuid.
type MemSource struct {
	mu       sync.Mutex
	articles []storedArticle
}

// NewMemSource creates an empty in-memory document source.
func NewMemSource() *MemSource {
	return &MemSource{}
}

// AddArticle stores an article with the given time and entity mentions,
// generating and returning a fresh document id.
func (m *MemSource) AddArticle(t int64, entities []Entity) objectid.ID {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := uuid.New()
	id := objectid.FromOID(u[:12])

	m.articles = append(m.articles, storedArticle{id: id, time: t, entities: append([]Entity(nil), entities...)})
	sort.Slice(m.articles, func(i, j int) bool {
		if m.articles[i].time != m.articles[j].time {
			return m.articles[i].time < m.articles[j].time
		}
		return m.articles[i].id.Compare(m.articles[j].id) < 0
	})
	return id
}

// matches evaluates one TimeFilter predicate against a stored article.
// For the strict forms (OpGT/OpLT) a same-timestamp match additionally
// requires the $or id tiebreaker.
func matches(a storedArticle, f TimeFilter) bool {
	switch f.Op {
	case OpGT:
		if a.time != f.Time {
			return a.time > f.Time
		}
		return f.HasTieBreak && a.id.Compare(f.TieBreakID) > 0
	case OpLT:
		if a.time != f.Time {
			return a.time < f.Time
		}
		return f.HasTieBreak && a.id.Compare(f.TieBreakID) < 0
	case OpGTE:
		return a.time >= f.Time
	case OpLTE:
		return a.time <= f.Time
	default:
		return false
	}
}

// FindArticles implements Source.
func (m *MemSource) FindArticles(filter TimeFilter, sort_ Sort, limit int) (ArticleCursor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []storedArticle
	for _, a := range m.articles {
		if matches(a, filter) {
			matched = append(matched, a)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.time != b.time {
			if sort_.TimeOrder == Ascending {
				return a.time < b.time
			}
			return a.time > b.time
		}
		cmp := a.id.Compare(b.id)
		if sort_.IDOrder == Ascending {
			return cmp < 0
		}
		return cmp > 0
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	out := make([]Article, len(matched))
	for i, a := range matched {
		out[i] = Article{ID: a.id, Time: a.time}
	}
	return &sliceArticleCursor{items: out}, nil
}

// FindEntities implements Source.
func (m *MemSource) FindEntities(docID objectid.ID, sortBySentence bool) (EntityCursor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.articles {
		if a.id.Compare(docID) != 0 {
			continue
		}
		ents := append([]Entity(nil), a.entities...)
		if sortBySentence {
			sort.SliceStable(ents, func(i, j int) bool { return ents[i].Sen < ents[j].Sen })
		}
		return &sliceEntityCursor{items: ents}, nil
	}
	return &sliceEntityCursor{}, nil
}

type sliceArticleCursor struct {
	items []Article
	pos   int
}

func (c *sliceArticleCursor) Next() (Article, bool) {
	if c.pos >= len(c.items) {
		return Article{}, false
	}
	a := c.items[c.pos]
	c.pos++
	return a, true
}

func (c *sliceArticleCursor) Close() error { return nil }

type sliceEntityCursor struct {
	items []Entity
	pos   int
}

func (c *sliceEntityCursor) Next() (Entity, bool) {
	if c.pos >= len(c.items) {
		return Entity{}, false
	}
	e := c.items[c.pos]
	c.pos++
	return e, true
}

func (c *sliceEntityCursor) Close() error { return nil }
