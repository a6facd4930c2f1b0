// Package expr implements the expression engine core: a lexer, a small AST,
// and an evaluator that reduces user-authored telemetry expressions to
// arbitrary-precision decimals.
//
// The grammar covers arithmetic with parentheses, one comparison per
// sub-expression (yielding exactly 1 or 0), and nested function calls
// resolved through a case-insensitive registry. Every division is rounded to
// 10 significant digits, half away from zero.
package expr

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sensorkit/synthexpr/internal/helpers"
)

const checksumLength = 12

// Expression is a parsed, immutable expression, safe to evaluate many times
// concurrently. Parse once, evaluate per telemetry batch.
type Expression struct {
	id        string
	source    string
	root      node
	createdAt time.Time
}

// Parse tokenizes and parses an expression string. A blank expression or any
// malformed input fails with an *EvaluationError.
func Parse(source string) (*Expression, error) {
	if strings.TrimSpace(source) == "" {
		return nil, newError("", ErrEmptyExpression)
	}

	tokens, err := lex(source)
	if err != nil {
		return nil, err
	}

	root, err := parse(tokens)
	if err != nil {
		return nil, err
	}

	return &Expression{
		id:        helpers.SHA256(source)[:checksumLength],
		source:    source,
		root:      root,
		createdAt: time.Now(),
	}, nil
}

// ID returns the content-derived identifier of this expression.
func (e *Expression) ID() string {
	return e.id
}

// Source returns the original expression text.
func (e *Expression) Source() string {
	return e.source
}

// CreatedAt returns when this expression was parsed.
func (e *Expression) CreatedAt() time.Time {
	return e.createdAt
}

// Variables returns the sorted set of variable names the expression
// references. Useful for callers assembling bindings from telemetry records.
func (e *Expression) Variables() []string {
	seen := make(map[string]struct{})
	collectVariables(e.root, seen)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Expression) String() string {
	return fmt.Sprintf("Expression{ID: %s, Source: %q}", e.id, e.source)
}
