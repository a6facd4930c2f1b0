package statistics

import (
	"context"
	"errors"
	"time"

	"github.com/sensorkit/synthexpr/execution/constants"
)

var (
	// ErrUnavailable is returned when a context-aware function runs without a
	// complete statistical context. Silently substituting zero here would
	// mask broken alerting logic, so this is always a hard failure.
	ErrUnavailable = errors.New("statistical context is not available")

	// ErrInvalidWindow is returned when a window code is not in the fixed
	// enumeration.
	ErrInvalidWindow = errors.New("invalid time window")
)

// Context bundles everything a statistical function needs beyond its literal
// arguments: which device to query, the reference instant that anchors time
// windows, and the capability to read historical values. It is created per
// evaluation call and discarded afterward.
type Context struct {
	// DeviceID is the external identifier of the device being evaluated.
	DeviceID string

	// Timestamp is the reference instant; window queries cover
	// [Timestamp - window, Timestamp].
	Timestamp time.Time

	// History is the caller-supplied historical-data capability.
	History HistoryQuerier
}

// NewContext creates a statistical context for a single evaluation.
func NewContext(deviceID string, timestamp time.Time, history HistoryQuerier) *Context {
	return &Context{
		DeviceID:  deviceID,
		Timestamp: timestamp,
		History:   history,
	}
}

// Available reports whether the context can serve historical queries. A
// context missing any of its three fields is unavailable and statistical
// functions must fail rather than guess a default.
func (c *Context) Available() bool {
	if c == nil {
		return false
	}
	return c.DeviceID != "" && !c.Timestamp.IsZero() && c.History != nil
}

// WithContext installs a statistical context into ctx for the duration of one
// evaluation. The value lives and dies with the derived context, which keeps
// it scoped to the calling goroutine's evaluation and cleared on every exit
// path.
func WithContext(ctx context.Context, sc *Context) context.Context {
	return context.WithValue(ctx, constants.Statistics, sc)
}

// FromContext extracts the statistical context installed by WithContext.
// Returns nil when none is present.
func FromContext(ctx context.Context) *Context {
	sc, ok := ctx.Value(constants.Statistics).(*Context)
	if !ok {
		return nil
	}
	return sc
}
