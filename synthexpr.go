// Package synthexpr evaluates user-authored telemetry expressions, the
// conditions and synthetic variables of an IoT platform, to
// arbitrary-precision decimals.
//
// The top-level API follows the "parse once, evaluate many times" pattern:
// FromString compiles an expression into an engine.Evaluator whose variable
// bindings come from a data.Provider, and each Eval call reads its per-call
// state (bindings, statistical context) from the context.Context it is given.
// One-shot helpers cover the simple cases.
package synthexpr

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sensorkit/synthexpr/engine"
	"github.com/sensorkit/synthexpr/execution/data"
	"github.com/sensorkit/synthexpr/execution/statistics"
	"github.com/sensorkit/synthexpr/expr"
	"github.com/sensorkit/synthexpr/funcs"
	"github.com/sensorkit/synthexpr/internal/helpers"
)

// ExpressionEvaluator binds a parsed expression to a variable source. It
// implements engine.EvaluatorWithPrep and is safe for concurrent use.
type ExpressionEvaluator struct {
	expression *expr.Expression
	core       *expr.Evaluator
	provider   data.Provider

	logHandler slog.Handler
	logger     *slog.Logger
}

// FromString parses an expression and builds an evaluator for it.
//
// Example:
//
//	evaluator, err := synthexpr.FromString("(temp_f - 32) * 5 / 9",
//		synthexpr.WithContextVariables(),
//	)
func FromString(expression string, opts ...Option) (*ExpressionEvaluator, error) {
	cfg := &Config{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}
	if err := WithDefaults()(cfg); err != nil {
		return nil, fmt.Errorf("error applying defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	parsed, err := expr.Parse(expression)
	if err != nil {
		return nil, err
	}

	handler, logger := helpers.SetupLogger(cfg.handler, "synthexpr", "ExpressionEvaluator")
	return &ExpressionEvaluator{
		expression: parsed,
		core:       expr.NewEvaluator(handler, cfg.registry),
		provider:   cfg.provider,
		logHandler: handler,
		logger:     logger.With("expressionID", parsed.ID()),
	}, nil
}

// Eval implements engine.Evaluator. Bindings come from the configured
// provider; the statistical context, if any, is read from ctx.
func (e *ExpressionEvaluator) Eval(ctx context.Context) (engine.Result, error) {
	bindings, err := e.provider.GetVariables(ctx)
	if err != nil {
		return engine.Result{}, fmt.Errorf("failed to get variable bindings: %w", err)
	}

	start := time.Now()
	value, err := e.core.Evaluate(ctx, e.expression, bindings)
	execTime := time.Since(start)
	if err != nil {
		return engine.Result{ExpressionID: e.expression.ID(), ExecTime: execTime}, err
	}

	e.logger.DebugContext(ctx, "evaluation complete", "value", value, "execTime", execTime)
	return engine.Result{
		Value:        value,
		ExpressionID: e.expression.ID(),
		ExecTime:     execTime,
	}, nil
}

// AddVariablesToContext implements engine.DataPreparer by delegating to the
// configured provider.
func (e *ExpressionEvaluator) AddVariablesToContext(
	ctx context.Context,
	bindings ...map[string]decimal.Decimal,
) (context.Context, error) {
	return e.provider.AddVariablesToContext(ctx, bindings...)
}

// Expression returns the parsed expression backing this evaluator.
func (e *ExpressionEvaluator) Expression() *expr.Expression {
	return e.expression
}

func (e *ExpressionEvaluator) String() string {
	return fmt.Sprintf("synthexpr.ExpressionEvaluator{%s}", e.expression)
}

// Evaluate is a one-shot helper: parse, bind, evaluate with the built-in
// function catalog.
func Evaluate(
	ctx context.Context,
	expression string,
	variables map[string]decimal.Decimal,
) (decimal.Decimal, error) {
	return expr.Evaluate(ctx, expression, variables)
}

// EvaluateWithStatistics is Evaluate with a statistical context installed
// for the duration of the call, enabling the context-aware functions
// (avg, sum, stddev, ...). The context is scoped to this call only.
func EvaluateWithStatistics(
	ctx context.Context,
	expression string,
	variables map[string]decimal.Decimal,
	sc *statistics.Context,
) (decimal.Decimal, error) {
	return expr.Evaluate(statistics.WithContext(ctx, sc), expression, variables)
}

// ListFunctions returns the introspection records of the built-in catalog,
// for autocomplete and help surfaces.
func ListFunctions() map[string]funcs.Info {
	return funcs.NewDefaultRegistry().ListFunctions()
}
