package metrics

import (
	"context"

	"github.com/sensorkit/synthexpr/engine"
)

// InstrumentedEvaluator wraps an engine.Evaluator and records evaluation
// counts, failures and durations. The delegate is unaware of the wrapping.
type InstrumentedEvaluator struct {
	delegate engine.Evaluator
	metrics  *Metrics
}

// NewInstrumentedEvaluator creates an instrumented wrapper around delegate.
func NewInstrumentedEvaluator(delegate engine.Evaluator, m *Metrics) *InstrumentedEvaluator {
	return &InstrumentedEvaluator{
		delegate: delegate,
		metrics:  m,
	}
}

// Eval implements engine.Evaluator.
func (ie *InstrumentedEvaluator) Eval(ctx context.Context) (engine.Result, error) {
	result, err := ie.delegate.Eval(ctx)

	status := "success"
	if err != nil {
		status = "error"
		ie.metrics.ErrorsTotal.WithLabelValues(result.ExpressionID).Inc()
	}
	ie.metrics.EvaluationsTotal.WithLabelValues(result.ExpressionID, status).Inc()
	ie.metrics.Duration.WithLabelValues(result.ExpressionID).Observe(result.ExecTime.Seconds())

	return result, err
}

// Unwrap returns the wrapped evaluator.
func (ie *InstrumentedEvaluator) Unwrap() engine.Evaluator {
	return ie.delegate
}
