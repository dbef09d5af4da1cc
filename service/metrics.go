package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"gf-server/search"
)

var (
	// SearchResults observes how many listings survive each ranking stage.
	SearchResults = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gym_search_results",
		Help:    "Number of listings remaining after each search stage",
		Buckets: []float64{0, 1, 5, 10, 20, 40, 60, 100},
	}, []string{"stage"})
)

func observeStats(stats search.Stats, refined int) {
	SearchResults.WithLabelValues("input").Observe(float64(stats.Input))
	SearchResults.WithLabelValues("geo").Observe(float64(stats.Geo))
	SearchResults.WithLabelValues("text").Observe(float64(stats.Text))
	SearchResults.WithLabelValues("priced").Observe(float64(stats.Priced))
	SearchResults.WithLabelValues("quality").Observe(float64(stats.Quality))
	SearchResults.WithLabelValues("ranked").Observe(float64(stats.Output))
	SearchResults.WithLabelValues("refined").Observe(float64(refined))
}
