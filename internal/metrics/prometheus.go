package metrics

import "github.com/prometheus/client_golang/prometheus"

type Prometheus struct {
	Stages           *prometheus.CounterVec
	FilteredFeatures *prometheus.CounterVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Stages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "expca",
				Name:      "stages",
			}, []string{"dataset", "stage"}),
		FilteredFeatures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "expca",
				Name:      "filtered_features",
			}, []string{"dataset"}),
	}
}
