package hunter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fetchCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "trollhunter_fetches_total",
	Help: "Number of API reads, by kind and outcome",
}, []string{"kind", "outcome"})

var contextFailureCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "trollhunter_context_failures_total",
	Help: "Number of posts whose reply context could not be fetched",
})

var replyCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "trollhunter_replies_total",
	Help: "Number of replies analyzed, by result",
}, []string{"result"})

var aggregateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "trollhunter_aggregate_duration_sec",
	Help:    "Total duration of account aggregation",
	Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
})
