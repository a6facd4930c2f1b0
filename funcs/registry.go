// Package funcs provides the function registry and the built-in math, logic
// and statistical functions available to telemetry expressions.
package funcs

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sensorkit/synthexpr/execution/statistics"
)

// ErrUnknownFunction is returned when an expression calls a name that was
// never registered.
var ErrUnknownFunction = errors.New("unknown function")

// Category groups registered functions for UI introspection.
type Category string

const (
	CategoryMath        Category = "Math"
	CategoryLogic       Category = "Logic"
	CategoryStatistical Category = "Statistical"
)

// Invocation carries everything a function call may need: the evaluated
// arguments, the evaluation's context for cancellation of historical
// queries, and, for context-aware functions, the statistical context of the
// current evaluation (nil when the caller supplied none).
type Invocation struct {
	Ctx        context.Context
	Args       []Arg
	Statistics *statistics.Context
}

// Function is a callable registered under a name. The two variants, Func and
// ContextFunc, adapt plain and context-aware implementations to this
// interface.
type Function interface {
	Invoke(inv Invocation) (decimal.Decimal, error)
}

// Func adapts a context-free function.
type Func func(args []Arg) (decimal.Decimal, error)

func (f Func) Invoke(inv Invocation) (decimal.Decimal, error) {
	return f(inv.Args)
}

// ContextFunc adapts a context-aware function. The implementation is
// responsible for rejecting an unavailable statistical context.
type ContextFunc func(ctx context.Context, sc *statistics.Context, args []Arg) (decimal.Decimal, error)

func (f ContextFunc) Invoke(inv Invocation) (decimal.Decimal, error) {
	ctx := inv.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return f(ctx, inv.Statistics, inv.Args)
}

// Info describes a registered function for introspection surfaces such as an
// expression editor's autocomplete panel.
type Info struct {
	Category    Category
	Description string
}

type entry struct {
	fn Function
	Info
}

// Registry maps case-insensitive function names to callables. It is
// populated once at startup and read-only afterward, so lookups need no
// locking.
type Registry struct {
	entries map[string]entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a function under a case-insensitive name. Re-registering a
// name overwrites silently; registration only happens during initialization
// from a fixed built-in set.
func (r *Registry) Register(name string, category Category, fn Function, description string) {
	r.entries[strings.ToLower(name)] = entry{
		fn:   fn,
		Info: Info{Category: category, Description: description},
	}
}

// Lookup resolves a function by case-insensitive name.
func (r *Registry) Lookup(name string) (Function, bool) {
	e, ok := r.entries[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return e.fn, true
}

// Has reports whether a function name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[strings.ToLower(name)]
	return ok
}

// Info returns the introspection record for a function name.
func (r *Registry) Info(name string) (Info, bool) {
	e, ok := r.entries[strings.ToLower(name)]
	if !ok {
		return Info{}, false
	}
	return e.Info, true
}

// ListFunctions returns the introspection records for every registered
// function, keyed by normalized name. Read-only; used to populate help and
// autocomplete panels.
func (r *Registry) ListFunctions() map[string]Info {
	result := make(map[string]Info, len(r.entries))
	for name, e := range r.entries {
		result[name] = e.Info
	}
	return result
}

// ListByCategory returns the sorted function names per category.
func (r *Registry) ListByCategory() map[Category][]string {
	result := make(map[Category][]string)
	for name, e := range r.entries {
		result[e.Category] = append(result[e.Category], name)
	}
	for _, names := range result {
		sort.Strings(names)
	}
	return result
}
