package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Observer counts analysis stage events. It only registers collectors;
// exposing them is left to whatever process embeds the library.
var Observer = &Metrics{
	prometheus: NewPrometheusMetrics(),
}

func init() {
	prometheus.MustRegister(Observer.prometheus.Stages)
	prometheus.MustRegister(Observer.prometheus.FilteredFeatures)
}

type Metrics struct {
	prometheus Prometheus
}

// Increment counts one stage event for the given dataset and stage labels.
func (m *Metrics) Increment(labels ...string) {
	m.prometheus.Stages.WithLabelValues(labels...).Inc()
}

// AddFiltered counts features removed by the variance filter for the dataset.
func (m *Metrics) AddFiltered(dataset string, count int) {
	m.prometheus.FilteredFeatures.WithLabelValues(dataset).Add(float64(count))
}
