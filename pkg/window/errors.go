package window

import "errors"

var (
	// ErrZeroWidth is returned by New when left == right, which would
	// collapse the interval to a single instant.
	ErrZeroWidth = errors.New("window: zero-width interval rejected")
	// ErrInvertedRange is returned by New when right < left.
	ErrInvertedRange = errors.New("window: right offset must be >= left offset")
)
