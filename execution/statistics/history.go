package statistics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Sample is a single historical observation of a device variable.
type Sample struct {
	Timestamp time.Time
	Value     decimal.Decimal
}

// Aggregate summarizes the values of one variable over a query range.
type Aggregate struct {
	Min   decimal.Decimal
	Max   decimal.Decimal
	Avg   decimal.Decimal
	Sum   decimal.Decimal
	Count int64
}

// HistoryQuerier is the capability handed to the engine for reading
// historical telemetry. The engine never defines how it is implemented
// (database, cache, or remote service); any blocking or retry behavior lives
// behind this interface. Failures are propagated to the evaluation as-is.
type HistoryQuerier interface {
	// QueryAggregate returns the aggregate for one device variable over
	// [start, end], both ends inclusive.
	QueryAggregate(ctx context.Context, deviceID, variable string, start, end time.Time) (Aggregate, error)

	// QueryValues returns the raw samples for one device variable over
	// [start, end] in ascending timestamp order. Used by functions such as
	// stddev and median that cannot be computed from an aggregate alone.
	QueryValues(ctx context.Context, deviceID, variable string, start, end time.Time) ([]Sample, error)
}
