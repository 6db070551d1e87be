// Package metrics exposes the Prometheus instruments of the report
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the collectors registered for a single server instance.
type Metrics struct {
	Registry *prometheus.Registry

	ParsesTotal   *prometheus.CounterVec
	ParseDuration prometheus.Histogram
	ExportsTotal  prometheus.Counter
}

// New builds a fresh registry with the service collectors plus the usual
// process and Go runtime collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		Registry: reg,
		ParsesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "report_parses_total",
			Help: "Parsed reports by dialect and outcome.",
		}, []string{"dialect", "outcome"}),
		ParseDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "report_parse_duration_seconds",
			Help:    "Wall time spent parsing one report.",
			Buckets: prometheus.DefBuckets,
		}),
		ExportsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "report_exports_total",
			Help: "Spreadsheet exports generated.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveParse records one parse attempt.
func (m *Metrics) ObserveParse(dialect, outcome string, seconds float64) {
	m.ParsesTotal.WithLabelValues(dialect, outcome).Inc()
	m.ParseDuration.Observe(seconds)
}
