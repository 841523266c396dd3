package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookatlas_recipe_searches_total",
			Help: "Total number of recipe searches by sort order and outcome",
		},
		[]string{"order", "outcome"},
	)

	searchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cookatlas_recipe_search_duration_seconds",
			Help:    "Recipe search latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func observeSearch(order Order, err error, d time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	searchesTotal.WithLabelValues(order.String(), outcome).Inc()
	searchDuration.Observe(d.Seconds())
}
