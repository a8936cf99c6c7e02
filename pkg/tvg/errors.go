package tvg

import "errors"

var (
	// ErrAlreadyLinked is returned by Insert when the graph is already
	// linked into some TVG (this one or another).
	ErrAlreadyLinked = errors.New("tvg: graph already linked")
	// ErrIncompatibleFlags is returned by Insert when the graph's
	// nonzero/positive/directed flags do not match the Store's.
	ErrIncompatibleFlags = errors.New("tvg: incompatible graph flags")
	// ErrNotFound is returned by primary-key/index lookups with no match.
	ErrNotFound = errors.New("tvg: not found")
	// ErrMissingPrimaryKey is returned when linking a node whose primary
	// key attributes are not all set.
	ErrMissingPrimaryKey = errors.New("tvg: missing primary key attribute")
	// ErrPrimaryKeyImmutable is returned when attempting to change a
	// primary-key attribute on a node already linked.
	ErrPrimaryKeyImmutable = errors.New("tvg: primary key is immutable once linked")
)
