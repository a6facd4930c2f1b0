package funcs

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sensorkit/synthexpr/execution/statistics"
	"github.com/sensorkit/synthexpr/internal/decmath"
)

// Statistical built-ins. All are context-aware: they take a quoted variable
// name and a time-window code, and query the evaluation's historical-data
// capability over [timestamp - window, timestamp]. Running without an
// available statistical context is a hard failure; an empty query result
// yields zero.

func avgFunc(ctx context.Context, sc *statistics.Context, args []Arg) (decimal.Decimal, error) {
	variable, window, err := windowArgs(sc, args, "avg")
	if err != nil {
		return decimal.Decimal{}, err
	}
	agg, err := queryAggregate(ctx, sc, variable, window, "avg")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return agg.Avg, nil
}

func sumFunc(ctx context.Context, sc *statistics.Context, args []Arg) (decimal.Decimal, error) {
	variable, window, err := windowArgs(sc, args, "sum")
	if err != nil {
		return decimal.Decimal{}, err
	}
	agg, err := queryAggregate(ctx, sc, variable, window, "sum")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return agg.Sum, nil
}

func countFunc(ctx context.Context, sc *statistics.Context, args []Arg) (decimal.Decimal, error) {
	variable, window, err := windowArgs(sc, args, "count")
	if err != nil {
		return decimal.Decimal{}, err
	}
	agg, err := queryAggregate(ctx, sc, variable, window, "count")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromInt(agg.Count), nil
}

func minTimeFunc(ctx context.Context, sc *statistics.Context, args []Arg) (decimal.Decimal, error) {
	variable, window, err := windowArgs(sc, args, "mintime")
	if err != nil {
		return decimal.Decimal{}, err
	}
	agg, err := queryAggregate(ctx, sc, variable, window, "mintime")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return agg.Min, nil
}

func maxTimeFunc(ctx context.Context, sc *statistics.Context, args []Arg) (decimal.Decimal, error) {
	variable, window, err := windowArgs(sc, args, "maxtime")
	if err != nil {
		return decimal.Decimal{}, err
	}
	agg, err := queryAggregate(ctx, sc, variable, window, "maxtime")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return agg.Max, nil
}

func stddevFunc(ctx context.Context, sc *statistics.Context, args []Arg) (decimal.Decimal, error) {
	variable, window, err := windowArgs(sc, args, "stddev")
	if err != nil {
		return decimal.Decimal{}, err
	}
	samples, err := queryValues(ctx, sc, variable, window, "stddev")
	if err != nil {
		return decimal.Decimal{}, err
	}
	if len(samples) < 2 {
		return decimal.Zero, nil
	}

	count := decimal.NewFromInt(int64(len(samples)))
	var sum decimal.Decimal
	for _, sample := range samples {
		sum = sum.Add(sample.Value)
	}
	mean, err := decmath.Div(sum, count)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("stddev: %w", err)
	}

	var squares decimal.Decimal
	for _, sample := range samples {
		deviation := sample.Value.Sub(mean)
		squares = squares.Add(deviation.Mul(deviation))
	}
	variance, err := decmath.Div(squares, count)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("stddev: %w", err)
	}
	return decimal.NewFromFloat(math.Sqrt(variance.InexactFloat64())), nil
}

func rateFunc(ctx context.Context, sc *statistics.Context, args []Arg) (decimal.Decimal, error) {
	variable, window, err := windowArgs(sc, args, "rate")
	if err != nil {
		return decimal.Decimal{}, err
	}
	samples, err := queryValues(ctx, sc, variable, window, "rate")
	if err != nil {
		return decimal.Decimal{}, err
	}
	if len(samples) < 2 {
		return decimal.Zero, nil
	}

	change := samples[len(samples)-1].Value.Sub(samples[0].Value)

	// Per-hour rate; windows shorter than one hour normalize to one hour.
	hours := int64(window.Duration().Hours())
	if hours == 0 {
		hours = 1
	}
	result, err := decmath.Div(change, decimal.NewFromInt(hours))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("rate: %w", err)
	}
	return result, nil
}

func percentChangeFunc(ctx context.Context, sc *statistics.Context, args []Arg) (decimal.Decimal, error) {
	variable, window, err := windowArgs(sc, args, "percentchange")
	if err != nil {
		return decimal.Decimal{}, err
	}
	samples, err := queryValues(ctx, sc, variable, window, "percentchange")
	if err != nil {
		return decimal.Decimal{}, err
	}
	if len(samples) < 2 {
		return decimal.Zero, nil
	}

	first := samples[0].Value
	last := samples[len(samples)-1].Value
	if first.IsZero() {
		return decimal.Zero, nil
	}
	ratio, err := decmath.Div(last.Sub(first), first)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("percentchange: %w", err)
	}
	return ratio.Mul(decimal.NewFromInt(100)), nil
}

func medianFunc(ctx context.Context, sc *statistics.Context, args []Arg) (decimal.Decimal, error) {
	variable, window, err := windowArgs(sc, args, "median")
	if err != nil {
		return decimal.Decimal{}, err
	}
	samples, err := queryValues(ctx, sc, variable, window, "median")
	if err != nil {
		return decimal.Decimal{}, err
	}
	if len(samples) == 0 {
		return decimal.Zero, nil
	}

	values := make([]decimal.Decimal, len(samples))
	for i, sample := range samples {
		values[i] = sample.Value
	}
	sort.Slice(values, func(i, j int) bool {
		return values[i].LessThan(values[j])
	})

	size := len(values)
	if size%2 == 1 {
		return values[size/2], nil
	}
	middle := values[size/2-1].Add(values[size/2])
	result, err := decmath.Div(middle, decimal.NewFromInt(2))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("median: %w", err)
	}
	return result, nil
}

// windowArgs validates the context and the (variable, window) argument pair
// shared by every statistical function.
func windowArgs(sc *statistics.Context, args []Arg, name string) (string, statistics.TimeWindow, error) {
	if !sc.Available() {
		return "", statistics.TimeWindow{}, fmt.Errorf(
			"%s: %w; this function requires a device-scoped evaluation", name, statistics.ErrUnavailable)
	}
	if err := requireArgs(args, 2, name); err != nil {
		return "", statistics.TimeWindow{}, err
	}
	variable := args[0].Text()
	if variable == "" {
		return "", statistics.TimeWindow{}, fmt.Errorf("%s: variable name must not be empty", name)
	}
	window, err := statistics.ParseWindow(args[1].Text())
	if err != nil {
		return "", statistics.TimeWindow{}, fmt.Errorf("%s: %w", name, err)
	}
	return variable, window, nil
}

func queryAggregate(
	ctx context.Context,
	sc *statistics.Context,
	variable string,
	window statistics.TimeWindow,
	name string,
) (statistics.Aggregate, error) {
	agg, err := sc.History.QueryAggregate(ctx, sc.DeviceID, variable, window.StartTime(sc.Timestamp), sc.Timestamp)
	if err != nil {
		return statistics.Aggregate{}, fmt.Errorf("%s: historical query failed: %w", name, err)
	}
	return agg, nil
}

func queryValues(
	ctx context.Context,
	sc *statistics.Context,
	variable string,
	window statistics.TimeWindow,
	name string,
) ([]statistics.Sample, error) {
	samples, err := sc.History.QueryValues(ctx, sc.DeviceID, variable, window.StartTime(sc.Timestamp), sc.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("%s: historical query failed: %w", name, err)
	}
	return samples, nil
}
