// Package docsource implements the engine's external document-source
// contract: FindArticles/FindEntities over an opaque document store, the
// article-to-Graph translation rule, and Sync, which fetches graphs by
// time range on demand, links them into a tvg.Store, and flags the
// not-yet-fetched chronological frontier. The filter/sort shape is modeled
// as a small struct tree so implementations can isolate whatever wire
// format their store speaks; MemSource is the in-memory reference Source
// used by tests.
package docsource
