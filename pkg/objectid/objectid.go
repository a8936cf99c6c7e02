// Package objectid implements a tagged 96-bit identifier used by Graphs
// loaded from a document store: tag none (no id), tag int (a small
// integer id), or tag oid (a 12-byte identifier in the shape common
// document stores use for their native "_id" type). The oid payload is
// generated and compared with the standard library so no store driver is
// needed purely for its ID type.
package objectid

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Tag discriminates the three forms an ID may take.
type Tag uint8

const (
	// TagNone marks an unset id; the zero value of ID.
	TagNone Tag = iota
	// TagInt marks an id carrying a 64-bit integer.
	TagInt
	// TagOID marks an id carrying a 12-byte document-store identifier.
	TagOID
)

// oidSize is the payload width of a document-store object id.
const oidSize = 12

// ID is a tagged identifier. The zero value is None.
type ID struct {
	tag Tag
	n   int64
	oid [oidSize]byte
}

// None returns the unset id.
func None() ID { return ID{tag: TagNone} }

// FromInt wraps an integer id.
func FromInt(n int64) ID { return ID{tag: TagInt, n: n} }

// FromOID wraps a 12-byte document-store id. Panics if b is not exactly
// 12 bytes, matching the fixed-width contract of the wire type it models.
func FromOID(b []byte) ID {
	if len(b) != oidSize {
		panic(fmt.Sprintf("objectid: FromOID requires %d bytes, got %d", oidSize, len(b)))
	}
	var id ID
	id.tag = TagOID
	copy(id.oid[:], b)
	return id
}

// NewOID generates a fresh random 12-byte document-store id.
func NewOID() (ID, error) {
	var id ID
	id.tag = TagOID
	if _, err := rand.Read(id.oid[:]); err != nil {
		return ID{}, fmt.Errorf("objectid: generate oid: %w", err)
	}
	return id, nil
}

// Tag reports which form the id takes.
func (id ID) Tag() Tag { return id.tag }

// IsNone reports whether the id is unset.
func (id ID) IsNone() bool { return id.tag == TagNone }

// Int returns the wrapped integer and whether the id carries tag Int.
func (id ID) Int() (int64, bool) {
	if id.tag != TagInt {
		return 0, false
	}
	return id.n, true
}

// OID returns the wrapped 12-byte payload and whether the id carries tag OID.
func (id ID) OID() ([oidSize]byte, bool) {
	if id.tag != TagOID {
		return [oidSize]byte{}, false
	}
	return id.oid, true
}

// Compare orders ids first by tag (None < Int < OID), then by value within
// a tag. Used to break ties between TVG graphs sharing one timestamp;
// graphs without an objectid compare as less than any graph with one,
// which is exactly None's ordering here.
func (id ID) Compare(other ID) int {
	if id.tag != other.tag {
		if id.tag < other.tag {
			return -1
		}
		return 1
	}
	switch id.tag {
	case TagNone:
		return 0
	case TagInt:
		switch {
		case id.n < other.n:
			return -1
		case id.n > other.n:
			return 1
		default:
			return 0
		}
	case TagOID:
		return bytes.Compare(id.oid[:], other.oid[:])
	default:
		return 0
	}
}

// String renders a human-readable form: "none", "int:<n>", or the hex
// encoding of the oid payload.
func (id ID) String() string {
	switch id.tag {
	case TagInt:
		return fmt.Sprintf("int:%d", id.n)
	case TagOID:
		return hex.EncodeToString(id.oid[:])
	default:
		return "none"
	}
}
