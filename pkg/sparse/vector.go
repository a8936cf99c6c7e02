package sparse

import (
	"errors"
	"math"
)

// ErrLengthMismatch is returned by the bulk Set/Add/Sub/Del operations when
// the parallel indices/weights arrays have differing lengths.
var ErrLengthMismatch = errors.New("sparse: indices and weights length mismatch")

// Vector is a sparse mapping from uint64 index to float32 weight. Absent
// entries read as zero.
type Vector struct {
	header
	s *store[uint64]
}

// NewVector creates an empty vector. flags is a combination of Nonzero and
// Positive; eps <= 0 uses DefaultEps.
func NewVector(flags Flags, eps float32) *Vector {
	return &Vector{
		header: newHeader(flags &^ Directed, eps),
		s:      newStore[uint64](hashUint64, lessUint64, equalUint64),
	}
}

// Get returns the weight at index k, or 0 if absent.
func (v *Vector) Get(k uint64) float32 {
	w, _ := v.s.get(k)
	return w
}

// Has reports whether index k has a stored entry.
func (v *Vector) Has(k uint64) bool {
	_, ok := v.s.get(k)
	return ok
}

// Len returns the number of stored entries.
func (v *Vector) Len() int { return v.s.len() }

// Empty reports whether the vector has no stored entries.
func (v *Vector) Empty() bool { return v.s.len() == 0 }

// Set stores w at index k, applying the zero/positive policy afterwards.
// Under Nonzero, set(k, 0) removes any existing entry; without Nonzero,
// set(k, 0) still materialises a present-with-zero-value entry.
func (v *Vector) Set(k uint64, w float32) {
	v.applyOne(k, w)
}

// Add adds w to the current weight at index k (treating absent as 0).
func (v *Vector) Add(k uint64, w float32) {
	v.applyOne(k, v.Get(k)+w)
}

// Sub subtracts w from the current weight at index k.
func (v *Vector) Sub(k uint64, w float32) {
	v.applyOne(k, v.Get(k)-w)
}

// Del removes the entry at index k, if present.
func (v *Vector) Del(k uint64) {
	if !v.Has(k) {
		return
	}
	v.s.delete(k)
	v.bump()
}

func (v *Vector) applyOne(k uint64, w float32) {
	if v.header.keep(w) {
		v.s.put(k, w)
	} else if v.Has(k) {
		v.s.delete(k)
	}
	v.bump()
}

func weightAt(weights []float32, i int) float32 {
	if weights == nil {
		return 1
	}
	return weights[i]
}

// SetMany is the bulk form of Set over parallel indices/weights arrays.
// A nil weights array defaults every weight to 1.
func (v *Vector) SetMany(indices []uint64, weights []float32) error {
	if weights != nil && len(weights) != len(indices) {
		return ErrLengthMismatch
	}
	for i, k := range indices {
		v.applyOne(k, weightAt(weights, i))
	}
	return nil
}

// AddMany is the bulk form of Add.
func (v *Vector) AddMany(indices []uint64, weights []float32) error {
	if weights != nil && len(weights) != len(indices) {
		return ErrLengthMismatch
	}
	for i, k := range indices {
		v.applyOne(k, v.Get(k)+weightAt(weights, i))
	}
	return nil
}

// SubMany is the bulk form of Sub.
func (v *Vector) SubMany(indices []uint64, weights []float32) error {
	if weights != nil && len(weights) != len(indices) {
		return ErrLengthMismatch
	}
	for i, k := range indices {
		v.applyOne(k, v.Get(k)-weightAt(weights, i))
	}
	return nil
}

// DelMany is the bulk form of Del.
func (v *Vector) DelMany(indices []uint64) {
	for _, k := range indices {
		v.Del(k)
	}
}

// MulConst scales every entry by c in place. Entries that fall below eps or
// become negative under the current policy are removed as part of the
// scale, atomically from the caller's perspective.
func (v *Vector) MulConst(c float32) {
	if v.s.len() == 0 {
		v.bump()
		return
	}
	es := v.s.entries()
	for _, e := range es {
		w := e.weight * c
		if v.header.keep(w) {
			v.s.put(e.key, w)
		} else {
			v.s.delete(e.key)
		}
	}
	v.bump()
}

// Norm returns the Euclidean (L2) norm, memoised per revision.
func (v *Vector) Norm() float64 {
	v.refreshMemo()
	if v.haveNorm {
		return v.memoNorm
	}
	var acc float64
	v.s.each(func(_ uint64, w float32) {
		acc += float64(w) * float64(w)
	})
	v.memoNorm = math.Sqrt(acc)
	v.haveNorm = true
	return v.memoNorm
}

// Dot returns the dot product with other.
func (v *Vector) Dot(other *Vector) float64 {
	a, b := v, other
	if a.s.len() > b.s.len() {
		a, b = b, a
	}
	var acc float64
	a.s.each(func(k uint64, w float32) {
		if ow, ok := b.s.get(k); ok {
			acc += float64(w) * float64(ow)
		}
	})
	return acc
}

// SubNorm returns ‖self − other‖₂ without materialising the difference.
func (v *Vector) SubNorm(other *Vector) float64 {
	var acc float64
	seen := make(map[uint64]bool, v.s.len())
	v.s.each(func(k uint64, w float32) {
		seen[k] = true
		ow, _ := other.s.get(k)
		d := float64(w) - float64(ow)
		acc += d * d
	})
	other.s.each(func(k uint64, ow float32) {
		if seen[k] {
			return
		}
		acc += float64(ow) * float64(ow)
	})
	return math.Sqrt(acc)
}

// entryView is a single (index, weight) pair returned by Entries.
type entryView struct {
	Index  uint64
	Weight float32
}

// Entries returns all stored entries in ascending index order.
func (v *Vector) Entries() []entryView {
	es := v.s.entries()
	out := make([]entryView, len(es))
	for i, e := range es {
		out[i] = entryView{Index: e.key, Weight: e.weight}
	}
	return out
}

// MemoryUsage estimates the vector's resident memory in bytes, memoised
// per revision. Used by the Query Cache's byte-budget accounting.
func (v *Vector) MemoryUsage() uint64 {
	v.refreshMemo()
	if v.haveMemory {
		return v.memoMemory
	}
	const perEntry = 16 // key + weight + slice overhead, approximated
	v.memoMemory = uint64(v.s.len())*perEntry + 64
	v.haveMemory = true
	return v.memoMemory
}

// Clone returns a deep, independent copy of v.
func (v *Vector) Clone() *Vector {
	return &Vector{header: v.header, s: v.s.clone()}
}
