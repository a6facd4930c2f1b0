package data

import (
	"context"
	"fmt"
	"maps"

	"github.com/shopspring/decimal"

	"github.com/sensorkit/synthexpr/execution/constants"
)

// ContextProvider carries variable bindings in the context.Context of each
// evaluation. Because the bindings live in a per-call derived context, they
// are naturally scoped to one evaluation and disappear with it, which makes
// this the right provider for concurrent telemetry processing.
type ContextProvider struct {
	contextKey constants.ContextKey
}

// NewContextProvider creates a ContextProvider storing bindings under the
// given context key.
func NewContextProvider(contextKey constants.ContextKey) *ContextProvider {
	return &ContextProvider{contextKey: contextKey}
}

// GetVariables extracts the bindings installed by AddVariablesToContext.
// A context without bindings yields an empty map.
func (p *ContextProvider) GetVariables(ctx context.Context) (map[string]decimal.Decimal, error) {
	if p.contextKey == "" {
		return nil, fmt.Errorf("context key is empty")
	}

	value := ctx.Value(p.contextKey)
	if value == nil {
		return make(map[string]decimal.Decimal), nil
	}

	bindings, ok := value.(map[string]decimal.Decimal)
	if !ok {
		return nil, fmt.Errorf("invalid binding data type: expected map[string]decimal.Decimal, got %T", value)
	}
	return maps.Clone(bindings), nil
}

// AddVariablesToContext merges the provided binding maps into a new derived
// context. Later maps override earlier ones for duplicate names; existing
// bindings in ctx are preserved unless overridden.
func (p *ContextProvider) AddVariablesToContext(
	ctx context.Context,
	bindings ...map[string]decimal.Decimal,
) (context.Context, error) {
	if p.contextKey == "" {
		return ctx, fmt.Errorf("context key is empty")
	}

	merged, err := p.GetVariables(ctx)
	if err != nil {
		merged = make(map[string]decimal.Decimal)
	}
	for _, b := range bindings {
		maps.Copy(merged, b)
	}

	return context.WithValue(ctx, p.contextKey, merged), nil
}
