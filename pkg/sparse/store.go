package sparse

import "sort"

// initialBuckets is the starting bucket count; always kept a power of two
// so bucket selection can use a mask instead of a modulo.
const initialBuckets = 8

// maxLoadFactor is the average bucket occupancy above which the table
// doubles its bucket count.
const maxLoadFactor = 4

// entry is one key/weight pair. Entries within a bucket are kept sorted by
// key (via less) to make ordered full-enumeration and range intersection
// cheap.
type entry[K any] struct {
	key    K
	weight float32
}

// store is a hash-bucketed, open-addressed map from key K to a float32
// weight, with buckets kept in sorted-by-key order. It backs both Vector
// (K = uint64) and Graph (K = edgeKey).
type store[K any] struct {
	buckets [][]entry[K]
	count   int
	hash    func(K) uint64
	less    func(a, b K) bool
	equal   func(a, b K) bool
}

func newStore[K any](hash func(K) uint64, less func(a, b K) bool, equal func(a, b K) bool) *store[K] {
	return &store[K]{
		buckets: make([][]entry[K], initialBuckets),
		hash:    hash,
		less:    less,
		equal:   equal,
	}
}

func (s *store[K]) bucketFor(k K) int {
	return int(s.hash(k) & uint64(len(s.buckets)-1))
}

func (s *store[K]) search(bucket []entry[K], k K) (int, bool) {
	i := sort.Search(len(bucket), func(i int) bool {
		return !s.less(bucket[i].key, k)
	})
	if i < len(bucket) && s.equal(bucket[i].key, k) {
		return i, true
	}
	return i, false
}

// get returns the stored weight for k and whether it is present.
func (s *store[K]) get(k K) (float32, bool) {
	b := s.buckets[s.bucketFor(k)]
	i, ok := s.search(b, k)
	if !ok {
		return 0, false
	}
	return b[i].weight, true
}

// put inserts or overwrites the weight for k.
func (s *store[K]) put(k K, w float32) {
	idx := s.bucketFor(k)
	b := s.buckets[idx]
	i, ok := s.search(b, k)
	if ok {
		b[i].weight = w
		return
	}
	b = append(b, entry[K]{})
	copy(b[i+1:], b[i:])
	b[i] = entry[K]{key: k, weight: w}
	s.buckets[idx] = b
	s.count++
	s.maybeGrow()
}

// delete removes k, if present.
func (s *store[K]) delete(k K) {
	idx := s.bucketFor(k)
	b := s.buckets[idx]
	i, ok := s.search(b, k)
	if !ok {
		return
	}
	copy(b[i:], b[i+1:])
	s.buckets[idx] = b[:len(b)-1]
	s.count--
}

func (s *store[K]) maybeGrow() {
	if s.count <= len(s.buckets)*maxLoadFactor {
		return
	}
	old := s.buckets
	s.buckets = make([][]entry[K], len(old)*2)
	for _, b := range old {
		for _, e := range b {
			idx := s.bucketFor(e.key)
			s.buckets[idx] = append(s.buckets[idx], e)
		}
	}
	for i, b := range s.buckets {
		sort.Slice(b, func(x, y int) bool { return s.less(b[x].key, b[y].key) })
		s.buckets[i] = b
	}
}

// len returns the number of stored entries.
func (s *store[K]) len() int { return s.count }

// each calls fn for every entry in ascending-key order within each bucket.
// Bucket iteration order itself is not globally sorted; callers that need a
// fully sorted enumeration use entries.
func (s *store[K]) each(fn func(k K, w float32)) {
	for _, b := range s.buckets {
		for _, e := range b {
			fn(e.key, e.weight)
		}
	}
}

// entries returns a freshly allocated, globally sorted slice of all entries.
func (s *store[K]) entries() []entry[K] {
	out := make([]entry[K], 0, s.count)
	for _, b := range s.buckets {
		out = append(out, b...)
	}
	sort.Slice(out, func(i, j int) bool { return s.less(out[i].key, out[j].key) })
	return out
}

// clone deep-copies the store.
func (s *store[K]) clone() *store[K] {
	c := &store[K]{
		buckets: make([][]entry[K], len(s.buckets)),
		count:   s.count,
		hash:    s.hash,
		less:    s.less,
		equal:   s.equal,
	}
	for i, b := range s.buckets {
		if len(b) == 0 {
			continue
		}
		cb := make([]entry[K], len(b))
		copy(cb, b)
		c.buckets[i] = cb
	}
	return c
}

func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

func hashUint64(k uint64) uint64 { return splitmix64(k) }

func lessUint64(a, b uint64) bool  { return a < b }
func equalUint64(a, b uint64) bool { return a == b }
