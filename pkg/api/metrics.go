package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts error responses. It implements [prometheus.Collector] and
// must be registered by the caller:
//
//	m := api.NewMetrics()
//	registry.MustRegister(m)
type Metrics struct {
	responses    *prometheus.CounterVec
	unclassified prometheus.Counter
}

var _ prometheus.Collector = (*Metrics)(nil)

// NewMetrics creates unregistered error-response counters.
func NewMetrics() *Metrics {
	return &Metrics{
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "community_api",
			Name:      "error_responses_total",
			Help:      "Error responses written, by status and error tag",
		}, []string{"status", "error"}), // error: wire tag or "unclassified"
		unclassified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "community_api",
			Name:      "unclassified_errors_total",
			Help:      "Error responses that fell back to the raw cause text",
		}),
	}
}

// Describe implements [prometheus.Collector].
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.responses.Describe(ch)
	m.unclassified.Describe(ch)
}

// Collect implements [prometheus.Collector].
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.responses.Collect(ch)
	m.unclassified.Collect(ch)
}

func (m *Metrics) observe(status, label string, unclassified bool) {
	m.responses.WithLabelValues(status, label).Inc()
	if unclassified {
		m.unclassified.Inc()
	}
}
