// Package pools provides object pooling for reducing GC pressure.
//
// This package contains pool implementations for the scratch structures
// the engine allocates most often:
//
//   - Uint64Pool: Size-class based pooling for uint64 slices (node and
//     neighbor lists)
//   - NodeSetPool: Pooling for map[uint64]struct{} visited/seen sets used
//     by graph enumeration and traversal
package pools
