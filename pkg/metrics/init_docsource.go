package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDocSourceMetrics() {
	r.DocSourceFetchesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tvgraph_docsource_fetches_total",
			Help: "Total number of batch fetches issued against a document source",
		},
		[]string{"direction"},
	)

	r.DocSourceFetchDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tvgraph_docsource_fetch_duration_seconds",
			Help:    "Duration of a single batch fetch against a document source",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)

	r.DocSourceArticlesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "tvgraph_docsource_articles_total",
			Help: "Total number of articles translated into graphs",
		},
	)
}
