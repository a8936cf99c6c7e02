// Package sparse provides the in-memory sparse vector and sparse graph
// primitives that the rest of the engine is built on: an index-to-weight
// Vector, a (src,tgt)-to-weight Graph, and the shared revision/epsilon/flags
// bookkeeping both carry.
package sparse
