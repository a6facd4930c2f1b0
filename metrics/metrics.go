// Package metrics provides optional Prometheus instrumentation for
// evaluators: a decorator that counts and times evaluations without touching
// the engine itself.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for expression evaluation.
type Metrics struct {
	EvaluationsTotal *prometheus.CounterVec
	ErrorsTotal      *prometheus.CounterVec
	Duration         *prometheus.HistogramVec
}

// NewMetrics creates the evaluation collectors under the given namespace.
// An empty namespace defaults to "synthexpr".
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "synthexpr"
	}

	return &Metrics{
		EvaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "evaluations",
				Name:      "total",
				Help:      "Total number of expression evaluations",
			},
			[]string{"expression_id", "status"},
		),
		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "evaluations",
				Name:      "errors_total",
				Help:      "Total number of failed expression evaluations",
			},
			[]string{"expression_id"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "evaluations",
				Name:      "duration_seconds",
				Help:      "Expression evaluation duration in seconds",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"expression_id"},
		),
	}
}

// Register registers all collectors with the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{
		m.EvaluationsTotal,
		m.ErrorsTotal,
		m.Duration,
	} {
		if err := reg.Register(collector); err != nil {
			return err
		}
	}
	return nil
}
