package qlog

import "github.com/prometheus/client_golang/prometheus"

// Metrics collects the number of entries removed by optimization passes.
type Metrics struct {
	removed *prometheus.CounterVec
}

// NewMetrics creates and returns new unregistered metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		removed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qlog",
			Name:      "entries_removed_total",
			Help:      "The number of log entries removed by optimization passes.",
		}, []string{"pass"}),
	}
}

// Register will register the metrics with the provided registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	return reg.Register(m.removed)
}

// Removed returns the counter of the specified pass.
func (m *Metrics) Removed(pass string) prometheus.Counter {
	return m.removed.WithLabelValues(pass)
}

func (m *Metrics) observe(pass string, removed int) {
	// skip if disabled or nothing removed
	if m == nil || removed <= 0 {
		return
	}

	m.removed.WithLabelValues(pass).Add(float64(removed))
}
