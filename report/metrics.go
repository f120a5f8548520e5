package report

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var reportCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "trollhunter_reports_total",
	Help: "Number of report workflows, by final state",
}, []string{"outcome"})
