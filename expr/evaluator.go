package expr

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/sensorkit/synthexpr/execution/statistics"
	"github.com/sensorkit/synthexpr/funcs"
	"github.com/sensorkit/synthexpr/internal/decmath"
	"github.com/sensorkit/synthexpr/internal/helpers"
)

// Evaluator walks a parsed Expression against a set of variable bindings.
// It is stateless and reentrant: the only execution-scoped state is the
// statistical context, which travels in the context.Context of each call and
// therefore can never leak between concurrent evaluations.
type Evaluator struct {
	registry *funcs.Registry

	logHandler slog.Handler
	logger     *slog.Logger
}

// NewEvaluator creates an Evaluator backed by the given function registry.
// A nil registry gets the full built-in catalog; a nil handler gets the
// default text logger.
func NewEvaluator(handler slog.Handler, registry *funcs.Registry) *Evaluator {
	handler, logger := helpers.SetupLogger(handler, "expr", "Evaluator")
	if registry == nil {
		registry = funcs.NewDefaultRegistry()
	}
	return &Evaluator{
		registry:   registry,
		logHandler: handler,
		logger:     logger,
	}
}

// Registry returns the function registry this evaluator resolves calls
// against.
func (ev *Evaluator) Registry() *funcs.Registry {
	return ev.registry
}

func (ev *Evaluator) String() string {
	return "expr.Evaluator"
}

// Evaluate reduces the expression to a single decimal using the provided
// variable bindings. The bindings are never mutated. Statistical functions
// read the per-evaluation statistical context installed in ctx via
// statistics.WithContext; without one they fail rather than guess.
func (ev *Evaluator) Evaluate(
	ctx context.Context,
	expression *Expression,
	variables map[string]decimal.Decimal,
) (decimal.Decimal, error) {
	if expression == nil {
		return decimal.Decimal{}, newError("", ErrEmptyExpression)
	}

	sc := statistics.FromContext(ctx)
	result, err := ev.eval(ctx, expression.root, variables, sc)
	if err != nil {
		ev.logger.DebugContext(ctx, "evaluation failed",
			"expression", expression.Source(), "error", err)
		return decimal.Decimal{}, err
	}
	return result, nil
}

func (ev *Evaluator) eval(
	ctx context.Context,
	n node,
	variables map[string]decimal.Decimal,
	sc *statistics.Context,
) (decimal.Decimal, error) {
	switch v := n.(type) {
	case *numberNode:
		return v.value, nil

	case *stringNode:
		return decimal.Decimal{}, newError(v.String(), ErrStringOperand)

	case *variableNode:
		value, ok := variables[v.name]
		if !ok {
			return decimal.Decimal{}, newError(v.name, ErrUnknownVariable)
		}
		return value, nil

	case *unaryNode:
		operand, err := ev.eval(ctx, v.operand, variables, sc)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return operand.Neg(), nil

	case *binaryNode:
		return ev.evalBinary(ctx, v, variables, sc)

	case *compareNode:
		return ev.evalCompare(ctx, v, variables, sc)

	case *callNode:
		return ev.evalCall(ctx, v, variables, sc)

	default:
		return decimal.Decimal{}, newError(n.String(), fmt.Errorf("%w: unsupported syntax node", ErrSyntax))
	}
}

func (ev *Evaluator) evalBinary(
	ctx context.Context,
	n *binaryNode,
	variables map[string]decimal.Decimal,
	sc *statistics.Context,
) (decimal.Decimal, error) {
	left, err := ev.eval(ctx, n.left, variables, sc)
	if err != nil {
		return decimal.Decimal{}, err
	}
	right, err := ev.eval(ctx, n.right, variables, sc)
	if err != nil {
		return decimal.Decimal{}, err
	}

	switch n.op {
	case "+":
		return left.Add(right), nil
	case "-":
		return left.Sub(right), nil
	case "*":
		return left.Mul(right), nil
	case "/":
		quotient, err := decmath.Div(left, right)
		if err != nil {
			return decimal.Decimal{}, newError(n.String(), err)
		}
		return quotient, nil
	default:
		return decimal.Decimal{}, newError(n.String(), fmt.Errorf("%w: unknown operator %q", ErrSyntax, n.op))
	}
}

// evalCompare reduces a comparison to exactly 1 (true) or 0 (false).
func (ev *Evaluator) evalCompare(
	ctx context.Context,
	n *compareNode,
	variables map[string]decimal.Decimal,
	sc *statistics.Context,
) (decimal.Decimal, error) {
	left, err := ev.eval(ctx, n.left, variables, sc)
	if err != nil {
		return decimal.Decimal{}, err
	}
	right, err := ev.eval(ctx, n.right, variables, sc)
	if err != nil {
		return decimal.Decimal{}, err
	}

	cmp := left.Cmp(right)
	var truth bool
	switch n.op {
	case ">":
		truth = cmp > 0
	case "<":
		truth = cmp < 0
	case ">=":
		truth = cmp >= 0
	case "<=":
		truth = cmp <= 0
	case "==":
		truth = cmp == 0
	case "!=":
		truth = cmp != 0
	default:
		return decimal.Decimal{}, newError(n.String(), fmt.Errorf("%w: unknown operator %q", ErrSyntax, n.op))
	}

	if truth {
		return decimal.NewFromInt(1), nil
	}
	return decimal.Zero, nil
}

func (ev *Evaluator) evalCall(
	ctx context.Context,
	n *callNode,
	variables map[string]decimal.Decimal,
	sc *statistics.Context,
) (decimal.Decimal, error) {
	fn, ok := ev.registry.Lookup(n.name)
	if !ok {
		return decimal.Decimal{}, newError(n.name, ErrUnknownFunction)
	}

	args := make([]funcs.Arg, len(n.args))
	for i, argNode := range n.args {
		// String literals pass through verbatim; anything else is itself an
		// expression, evaluated before the call.
		if str, isString := argNode.(*stringNode); isString {
			args[i] = funcs.StringArg(str.value)
			continue
		}
		value, err := ev.eval(ctx, argNode, variables, sc)
		if err != nil {
			return decimal.Decimal{}, err
		}
		args[i] = funcs.NumberArg(value)
	}

	result, err := fn.Invoke(funcs.Invocation{Ctx: ctx, Args: args, Statistics: sc})
	if err != nil {
		return decimal.Decimal{}, newError(n.String(), err)
	}
	return result, nil
}

// Evaluate is a one-shot convenience: parse and evaluate with the built-in
// function catalog.
func Evaluate(
	ctx context.Context,
	source string,
	variables map[string]decimal.Decimal,
) (decimal.Decimal, error) {
	expression, err := Parse(source)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return NewEvaluator(nil, nil).Evaluate(ctx, expression, variables)
}
