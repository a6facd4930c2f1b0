package statistics

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TimeWindow is one of a closed set of named trailing durations usable by
// statistical functions, e.g. "5m" or "24h". Durations are exact; there is no
// snapping to calendar boundaries.
type TimeWindow struct {
	code     string
	duration time.Duration
}

var windowDurations = map[string]time.Duration{
	"5m":  5 * time.Minute,
	"15m": 15 * time.Minute,
	"1h":  time.Hour,
	"6h":  6 * time.Hour,
	"12h": 12 * time.Hour,
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
}

// ParseWindow maps a window code onto its TimeWindow. The code is trimmed and
// case-folded before matching; anything not in the fixed enumeration is an
// error, never a best-effort guess.
func ParseWindow(code string) (TimeWindow, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	d, ok := windowDurations[normalized]
	if !ok {
		return TimeWindow{}, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidWindow, code, validWindowCodes())
	}
	return TimeWindow{code: normalized, duration: d}, nil
}

// Code returns the normalized window code, e.g. "1h".
func (w TimeWindow) Code() string {
	return w.code
}

// Duration returns the exact length of the window.
func (w TimeWindow) Duration() time.Duration {
	return w.duration
}

// StartTime returns the beginning of the window relative to a reference
// instant: reference - duration.
func (w TimeWindow) StartTime(reference time.Time) time.Time {
	return reference.Add(-w.duration)
}

func (w TimeWindow) String() string {
	return w.code
}

func validWindowCodes() string {
	codes := make([]string, 0, len(windowDurations))
	for code := range windowDurations {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		return windowDurations[codes[i]] < windowDurations[codes[j]]
	})
	return strings.Join(codes, ", ")
}
