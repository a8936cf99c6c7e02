package pools

import (
	"sync"
)

// classCaps are the slice capacities the pool hands out. The anomaly scans
// request one neighbor list per node, and most nodes in a co-occurrence
// graph have few neighbors, so the classes are tuned small-first.
var classCaps = [...]int{16, 64, 256}

// maxPooledCap bounds what Put will retain; anything larger is left to the
// garbage collector.
const maxPooledCap = 10000

// Uint64Pool pools []uint64 scratch slices (neighbor lists, node index
// collections) in capacity classes.
type Uint64Pool struct {
	classes [len(classCaps)]sync.Pool
}

// NewUint64Pool creates a new uint64 slice pool.
func NewUint64Pool() *Uint64Pool {
	p := &Uint64Pool{}
	for i, c := range classCaps {
		n := c
		p.classes[i].New = func() any {
			s := make([]uint64, 0, n)
			return &s
		}
	}
	return p
}

func classFor(size int) int {
	for i, c := range classCaps {
		if size <= c {
			return i
		}
	}
	return -1
}

// Get returns an empty slice with at least the requested capacity.
func (p *Uint64Pool) Get(size int) []uint64 {
	i := classFor(size)
	if i < 0 {
		return make([]uint64, 0, size)
	}
	sp, ok := p.classes[i].Get().(*[]uint64)
	if !ok || cap(*sp) < size {
		return make([]uint64, 0, size)
	}
	return (*sp)[:0]
}

// Put returns a slice to the pool.
func (p *Uint64Pool) Put(s []uint64) {
	c := cap(s)
	if c > maxPooledCap {
		return
	}
	i := classFor(c)
	if i < 0 {
		return
	}
	s = s[:0]
	p.classes[i].Put(&s)
}

// Default global uint64 pool
var defaultUint64Pool = NewUint64Pool()

// GetUint64s returns a uint64 slice from the default pool.
func GetUint64s(size int) []uint64 {
	return defaultUint64Pool.Get(size)
}

// PutUint64s returns a uint64 slice to the default pool.
func PutUint64s(s []uint64) {
	defaultUint64Pool.Put(s)
}
