// Package algorithms implements the spectral and traversal algorithms that
// operate over a sparse.Graph: power iteration for the dominant eigenvector,
// and BFS in hop-count and accumulated-weight modes.
package algorithms
