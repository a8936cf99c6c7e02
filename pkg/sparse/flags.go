package sparse

// Flags is a bitset controlling the zero/positive/directed policy of a
// Vector or Graph.
type Flags uint8

const (
	// Nonzero means no stored entry may have |weight| < eps; entries that
	// fall below eps after a mutation are removed instead of stored.
	Nonzero Flags = 1 << iota
	// Positive means no stored entry may be negative; negative results
	// are removed instead of stored. Positive implies checking happens
	// in addition to, not instead of, Nonzero.
	Positive
	// Directed marks a Graph as directed. When unset, (a,b) and (b,a)
	// read identically and storage coalesces them.
	Directed
)

// Has reports whether all bits of want are set in f.
func (f Flags) Has(want Flags) bool {
	return f&want == want
}
