package data

import (
	"context"
	"errors"
	"maps"

	"github.com/shopspring/decimal"
)

// ErrStaticProviderNoRuntimeUpdates is returned when trying to add runtime
// bindings to a StaticProvider.
var ErrStaticProviderNoRuntimeUpdates = errors.New("StaticProvider doesn't support adding bindings at runtime")

// StaticProvider returns a fixed set of variable bindings, defined at
// construction. Useful for constants (thresholds, conversion factors) and
// for tests.
type StaticProvider struct {
	bindings map[string]decimal.Decimal
}

// NewStaticProvider creates a StaticProvider with the given bindings.
func NewStaticProvider(bindings map[string]decimal.Decimal) *StaticProvider {
	if bindings == nil {
		bindings = make(map[string]decimal.Decimal)
	}
	return &StaticProvider{bindings: bindings}
}

// GetVariables returns a copy of the static bindings, so callers can't
// mutate the provider's state.
func (p *StaticProvider) GetVariables(_ context.Context) (map[string]decimal.Decimal, error) {
	return maps.Clone(p.bindings), nil
}

// AddVariablesToContext implements Setter. Static bindings are immutable, so
// this always fails.
func (p *StaticProvider) AddVariablesToContext(
	ctx context.Context,
	_ ...map[string]decimal.Decimal,
) (context.Context, error) {
	return ctx, ErrStaticProviderNoRuntimeUpdates
}
