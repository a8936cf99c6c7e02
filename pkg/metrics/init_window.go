package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initWindowMetrics() {
	r.WindowUpdateDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tvgraph_window_update_duration_seconds",
			Help:    "Time spent folding graphs in or out of a window's metrics",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"metric"},
	)

	r.WindowAdvancesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "tvgraph_window_advances_total",
			Help: "Total number of Window.Update calls",
		},
	)
}
