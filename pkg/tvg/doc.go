// Package tvg holds an ordered collection of timestamped sparse graphs (a
// "time-varying graph") with forward/backward navigation, bucketed
// compression, and node-attribute primary-key resolution.
package tvg
