// Package format implements the engine's two line-oriented, UTF-8 file
// formats: the graph file (ts\tsrc\ttgt\tweight, consecutive equal-ts
// lines grouped into one Graph) and the node-attribute file (index plus
// named attribute columns, with an optional #index\t... header line).
package format
