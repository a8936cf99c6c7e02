// Package window implements the sliding time interval and its attached
// incremental aggregators (Metric). A Window
// tracks the closed interval [ts+left, ts+right] over a tvg.Store; each
// call to Update advances ts, computes the symmetric difference between the
// old and new source-graph sets, and folds the change into every attached
// Metric.
package window
