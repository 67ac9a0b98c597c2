package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/opensearch-ci/release-tracker/go/types"
)

var (
	queriesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "releasetracker_queries_total",
		Help: "Number of queries served, by record family.",
	}, []string{"family"})

	queryDuration = promauto.NewSummaryVec(prometheus.SummaryOpts{
		Name: "releasetracker_query_duration_seconds",
		Help: "End-to-end query pipeline duration, by record family.",
	}, []string{"family"})
)

// metricsTimer counts a query and returns a func observing its duration.
func metricsTimer(family types.Family) func() {
	queriesServed.WithLabelValues(string(family)).Inc()
	start := time.Now()
	return func() {
		queryDuration.WithLabelValues(string(family)).Observe(time.Since(start).Seconds())
	}
}
