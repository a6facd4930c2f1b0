// Package worker provides a generic bounded worker pool for concurrent
// evaluation batches: one work item per incoming telemetry record, each
// carrying its own variable bindings and statistical context.
package worker
