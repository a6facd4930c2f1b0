package data

import (
	"context"
	"errors"
	"maps"

	"github.com/shopspring/decimal"
)

// CompositeProvider merges the bindings of multiple providers. Later
// providers in the chain override earlier ones for duplicate names, so the
// typical layering is static constants first, runtime telemetry last.
type CompositeProvider struct {
	providers []Provider
}

// NewCompositeProvider creates a CompositeProvider that queries the given
// providers in order.
func NewCompositeProvider(providers ...Provider) *CompositeProvider {
	return &CompositeProvider{providers: providers}
}

// GetVariables merges the bindings from every provider in order.
func (p *CompositeProvider) GetVariables(ctx context.Context) (map[string]decimal.Decimal, error) {
	merged := make(map[string]decimal.Decimal)
	for _, provider := range p.providers {
		bindings, err := provider.GetVariables(ctx)
		if err != nil {
			return nil, err
		}
		maps.Copy(merged, bindings)
	}
	return merged, nil
}

// AddVariablesToContext forwards the bindings to every provider that
// supports runtime updates. Providers that don't (StaticProvider) are
// skipped; if no provider accepted the data, the last error is returned.
func (p *CompositeProvider) AddVariablesToContext(
	ctx context.Context,
	bindings ...map[string]decimal.Decimal,
) (context.Context, error) {
	accepted := false
	var lastErr error

	for _, provider := range p.providers {
		next, err := provider.AddVariablesToContext(ctx, bindings...)
		if err != nil {
			if errors.Is(err, ErrStaticProviderNoRuntimeUpdates) {
				continue
			}
			lastErr = err
			continue
		}
		ctx = next
		accepted = true
	}

	if !accepted {
		if lastErr != nil {
			return ctx, lastErr
		}
		return ctx, errors.New("no provider in the chain accepts runtime bindings")
	}
	return ctx, nil
}
