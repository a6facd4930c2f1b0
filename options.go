package synthexpr

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/sensorkit/synthexpr/execution/constants"
	"github.com/sensorkit/synthexpr/execution/data"
	"github.com/sensorkit/synthexpr/funcs"
)

// Config holds all configuration for building an expression evaluator.
type Config struct {
	handler  slog.Handler
	registry *funcs.Registry
	provider data.Provider
}

// Option is a function that modifies Config.
type Option func(*Config) error

// WithLogHandler sets the slog handler used by the evaluator and everything
// it constructs.
func WithLogHandler(handler slog.Handler) Option {
	return func(c *Config) error {
		if handler != nil {
			c.handler = handler
		}
		return nil
	}
}

// WithRegistry replaces the built-in function catalog.
func WithRegistry(registry *funcs.Registry) Option {
	return func(c *Config) error {
		if registry != nil {
			c.registry = registry
		}
		return nil
	}
}

// WithDataProvider sets the variable-binding source. When combined with
// other provider options, providers are chained and later ones win.
func WithDataProvider(provider data.Provider) Option {
	return func(c *Config) error {
		if provider != nil {
			c.chainProvider(provider)
		}
		return nil
	}
}

// WithVariables adds a fixed set of bindings, typically constants such as
// thresholds or conversion factors.
func WithVariables(bindings map[string]decimal.Decimal) Option {
	return func(c *Config) error {
		if len(bindings) == 0 {
			return fmt.Errorf("bindings map is empty")
		}
		c.chainProvider(data.NewStaticProvider(bindings))
		return nil
	}
}

// WithContextVariables makes the evaluator read bindings installed into the
// context via AddVariablesToContext, the usual setup for per-telemetry-batch
// evaluation.
func WithContextVariables() Option {
	return func(c *Config) error {
		c.chainProvider(data.NewContextProvider(constants.EvalData))
		return nil
	}
}

// WithDefaults fills in any values not set by earlier options. Applied as
// the final step by the constructors.
func WithDefaults() Option {
	return func(c *Config) error {
		if c.registry == nil {
			c.registry = funcs.NewDefaultRegistry()
		}
		if c.provider == nil {
			c.provider = data.NewContextProvider(constants.EvalData)
		}
		return nil
	}
}

func (c *Config) chainProvider(provider data.Provider) {
	if c.provider == nil {
		c.provider = provider
		return
	}
	c.provider = data.NewCompositeProvider(c.provider, provider)
}

// Validate performs basic validation on the configuration.
func (c *Config) Validate() error {
	if c.registry == nil {
		return fmt.Errorf("function registry is nil")
	}
	if c.provider == nil {
		return fmt.Errorf("data provider is nil")
	}
	return nil
}
