package pools

import (
	"sync"
)

// NodeSetPool pools map[uint64]struct{} node sets used as visited/seen
// scratch by graph enumeration and traversal.
type NodeSetPool struct {
	pool sync.Pool
}

// NewNodeSetPool creates a new node set pool.
func NewNodeSetPool() *NodeSetPool {
	return &NodeSetPool{
		pool: sync.Pool{
			New: func() any {
				return make(map[uint64]struct{}, 16)
			},
		},
	}
}

// Get returns a cleared node set from the pool.
func (p *NodeSetPool) Get() map[uint64]struct{} {
	m, ok := p.pool.Get().(map[uint64]struct{})
	if !ok {
		return make(map[uint64]struct{}, 16)
	}
	clear(m)
	return m
}

// Put returns a node set to the pool.
func (p *NodeSetPool) Put(m map[uint64]struct{}) {
	if m == nil || len(m) > 10000 {
		return // Don't pool nil or very large sets
	}
	p.pool.Put(m)
}

// Default global node set pool
var defaultNodeSetPool = NewNodeSetPool()

// GetNodeSet returns a node set from the default pool.
func GetNodeSet() map[uint64]struct{} {
	return defaultNodeSetPool.Get()
}

// PutNodeSet returns a node set to the default pool.
func PutNodeSet(m map[uint64]struct{}) {
	defaultNodeSetPool.Put(m)
}
