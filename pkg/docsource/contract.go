package docsource

import "github.com/dd0wney/tvgraph/pkg/objectid"

// SortOrder is ascending or descending.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// FilterOp is one of the four comparison predicates a time filter
// supports on an article's time field.
type FilterOp int

const (
	OpGT FilterOp = iota
	OpGTE
	OpLT
	OpLTE
)

// TimeFilter mirrors the document-store query shape: a $gt/$lt/$gte/$lte
// predicate on time with an $or tiebreaker on id for strict inequality. The
// tie-break only applies to the strict forms (OpGT/OpLT): it extends the
// predicate to (time Op Time) OR (time == Time AND id Op TieBreakID),
// which is how a forward/backward fetch resumes exactly after the last
// seen (time, id) pair without skipping or repeating a same-timestamp
// document.
type TimeFilter struct {
	Op          FilterOp
	Time        int64
	TieBreakID  objectid.ID
	HasTieBreak bool
}

// Sort orders a FindArticles query: time first, id as the tiebreaker.
type Sort struct {
	TimeOrder SortOrder
	IDOrder   SortOrder
}

// Article is one document returned by FindArticles.
type Article struct {
	ID   objectid.ID
	Time int64
}

// Entity is one {sen,ent} co-occurrence document returned by FindEntities.
type Entity struct {
	Sen int
	Ent string
}

// ArticleCursor enumerates Articles one at a time; Next returns false once
// exhausted. Close releases any underlying resources.
type ArticleCursor interface {
	Next() (Article, bool)
	Close() error
}

// EntityCursor enumerates Entities one at a time.
type EntityCursor interface {
	Next() (Entity, bool)
	Close() error
}

// Source is the external document-source contract. Implementations
// isolate the wire format; the core only ever sees Article/Entity values.
type Source interface {
	FindArticles(filter TimeFilter, sort Sort, limit int) (ArticleCursor, error)
	FindEntities(docID objectid.ID, sortBySentence bool) (EntityCursor, error)
}
