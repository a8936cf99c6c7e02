package format

import "errors"

var (
	// ErrMalformedLine is returned when a non-comment, non-blank line
	// does not match the expected field shape.
	ErrMalformedLine = errors.New("format: malformed line")
	// ErrIO wraps a scanner failure while reading the source.
	ErrIO = errors.New("format: I/O failure")
)
