package expr

import (
	"errors"
	"fmt"

	"github.com/sensorkit/synthexpr/funcs"
	"github.com/sensorkit/synthexpr/internal/decmath"
)

var (
	// ErrEmptyExpression is returned when the expression is empty or blank.
	ErrEmptyExpression = errors.New("expression is empty")

	// ErrSyntax is the cause of any malformed-input failure from the parser.
	ErrSyntax = errors.New("syntax error")

	// ErrMalformedNumber is returned for numeric literals that cannot be
	// parsed as decimals.
	ErrMalformedNumber = errors.New("malformed number")

	// ErrMismatchedParens is returned for unbalanced parentheses in function
	// calls or arithmetic grouping.
	ErrMismatchedParens = errors.New("mismatched parentheses")

	// ErrChainedComparison is returned when an expression contains more than
	// one top-level comparison operator. A single comparison per expression
	// is the documented contract.
	ErrChainedComparison = errors.New("only one comparison operator is allowed per expression")

	// ErrUnknownFunction is returned when a call names a function absent
	// from the registry. Alias of the funcs sentinel so callers can match
	// against either package.
	ErrUnknownFunction = funcs.ErrUnknownFunction

	// ErrUnknownVariable is returned when an identifier has no binding.
	ErrUnknownVariable = errors.New("unknown variable")

	// ErrStringOperand is returned when a string literal is used where a
	// number is required. Strings are only meaningful as function arguments.
	ErrStringOperand = errors.New("string literal cannot be used as a number")

	// ErrDivisionByZero is returned when any division's right operand is
	// zero. Never downgraded to infinity or a default value.
	ErrDivisionByZero = decmath.ErrDivisionByZero
)

// EvaluationError is the single error kind surfaced by Parse and Evaluate.
// It carries the offending fragment where one could be identified, and
// unwraps to one of the sentinel causes above.
type EvaluationError struct {
	// Fragment is the part of the expression that triggered the failure,
	// empty when the failure concerns the whole expression.
	Fragment string

	// Err is the underlying cause.
	Err error
}

func (e *EvaluationError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("expression evaluation failed: %v", e.Err)
	}
	return fmt.Sprintf("expression evaluation failed: %v in %q", e.Err, e.Fragment)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// newError wraps a cause into an EvaluationError, avoiding double wrapping.
func newError(fragment string, cause error) error {
	var evalErr *EvaluationError
	if errors.As(cause, &evalErr) {
		return cause
	}
	return &EvaluationError{Fragment: fragment, Err: cause}
}
