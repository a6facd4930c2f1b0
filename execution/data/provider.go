// Package data provides variable-binding providers: the sources an
// evaluator pulls its variable values from at evaluation time.
package data

import (
	"context"

	"github.com/shopspring/decimal"
)

// Getter retrieves variable bindings from a context.
type Getter interface {
	// GetVariables returns the variable name to value mapping for one
	// evaluation. The returned map is owned by the caller.
	GetVariables(ctx context.Context) (map[string]decimal.Decimal, error)
}

// Setter enriches a context with variable bindings ahead of evaluation,
// supporting call sites where data preparation and evaluation are separated.
type Setter interface {
	AddVariablesToContext(ctx context.Context, bindings ...map[string]decimal.Decimal) (context.Context, error)
}

// Provider is the combined interface used by evaluators.
type Provider interface {
	Getter
	Setter
}
