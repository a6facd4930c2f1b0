// Package engine defines the public evaluation interfaces implemented by
// the root package and wrapped by decorators such as metrics.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Result is the outcome of one evaluation.
type Result struct {
	// Value is the single decimal the expression reduced to.
	Value decimal.Decimal

	// ExpressionID identifies the parsed expression that produced the value.
	ExpressionID string

	// ExecTime is how long the evaluation took.
	ExecTime time.Duration
}

func (r Result) String() string {
	return fmt.Sprintf("Result{Value: %s, ExpressionID: %s, ExecTime: %s}",
		r.Value, r.ExpressionID, r.ExecTime)
}

// Evaluator evaluates a prepared expression. Implementations follow the
// "parse once, evaluate many times" pattern: the expression and its variable
// source are fixed at construction, and each Eval call reads per-call state
// (variable bindings, statistical context) from ctx.
type Evaluator interface {
	Eval(ctx context.Context) (Result, error)
}

// DataPreparer enriches a context with variable bindings ahead of Eval,
// allowing data preparation and evaluation to happen at different call
// sites.
type DataPreparer interface {
	AddVariablesToContext(ctx context.Context, bindings ...map[string]decimal.Decimal) (context.Context, error)
}

// EvaluatorWithPrep combines evaluation with context data preparation.
type EvaluatorWithPrep interface {
	Evaluator
	DataPreparer
}
