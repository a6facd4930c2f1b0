// Description: This file contains constants used for accessing values from context objects.
package constants

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// EvalData is the key used to store variable bindings in the context,
	// read back by data.ContextProvider during evaluation
	EvalData ContextKey = "eval_data"

	// Statistics is the key used to store the per-evaluation statistical
	// context. It is installed immediately before an evaluation and goes out
	// of scope with the context, so one evaluation's device or timestamp can
	// never leak into another's.
	Statistics ContextKey = "statistical_context"
)
