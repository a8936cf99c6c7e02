package sparse

// DefaultEps is the epsilon used when a caller does not specify one.
const DefaultEps = 1e-6

// header is embedded in both Vector and Graph. It carries the flags/eps
// policy, the monotonic revision counter, and a small fixed-size memoisation
// cache for derived values (norm, memory usage) keyed by the revision at
// which they were last computed. The length slot is not filled; Len and
// NumEdges read the store's count directly.
type header struct {
	flags    Flags
	eps      float32
	revision uint64

	memoRev    uint64
	memoNorm   float64
	haveNorm   bool
	memoLen    int
	haveLen    bool
	memoMemory uint64
	haveMemory bool
}

func newHeader(flags Flags, eps float32) header {
	if eps <= 0 {
		eps = DefaultEps
	}
	return header{flags: flags, eps: eps}
}

// Flags returns the object's zero/positive/directed policy bits.
func (h *header) Flags() Flags { return h.flags }

// Eps returns the current zero-policy tolerance.
func (h *header) Eps() float32 { return h.eps }

// SetEps changes the zero-policy tolerance. It does not retroactively purge
// entries that would now be considered zero; it only affects future
// mutations.
func (h *header) SetEps(eps float32) { h.eps = eps }

// Revision returns the monotonic mutation counter.
func (h *header) Revision() uint64 { return h.revision }

// bump is called by every mutating operation that observably changes state.
// It invalidates the memoisation cache.
func (h *header) bump() {
	h.revision++
}

// memoValid reports whether the memoisation cache is still current.
func (h *header) memoValid() bool {
	return h.memoRev == h.revision
}

func (h *header) invalidateMemo() {
	h.haveNorm = false
	h.haveLen = false
	h.haveMemory = false
}

func (h *header) refreshMemo() {
	if !h.memoValid() {
		h.invalidateMemo()
		h.memoRev = h.revision
	}
}

// keepSign reports whether a post-arithmetic weight should be kept under
// the object's nonzero/positive policy.
func (h *header) keep(w float32) bool {
	if h.flags.Has(Nonzero) && absf32(w) < h.eps {
		return false
	}
	if h.flags.Has(Positive) && w < 0 {
		return false
	}
	return true
}

func absf32(w float32) float32 {
	if w < 0 {
		return -w
	}
	return w
}
