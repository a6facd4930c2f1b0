package funcs

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Math built-ins. Transcendental functions go through float64, matching the
// precision the original engine delivered; rounding and min/max stay exact
// decimals.

func sqrtFunc(args []Arg) (decimal.Decimal, error) {
	x, err := oneNumber(args, "sqrt")
	if err != nil {
		return decimal.Decimal{}, err
	}
	if x.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("sqrt: argument must be non-negative, got %s", x)
	}
	return decimal.NewFromFloat(math.Sqrt(x.InexactFloat64())), nil
}

func powFunc(args []Arg) (decimal.Decimal, error) {
	if err := requireArgs(args, 2, "pow"); err != nil {
		return decimal.Decimal{}, err
	}
	base, err := args[0].Number()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("pow: %w", err)
	}
	exponent, err := args[1].Number()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("pow: %w", err)
	}
	result := math.Pow(base.InexactFloat64(), exponent.InexactFloat64())
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return decimal.Decimal{}, fmt.Errorf("pow: result of %s^%s is not a finite number", base, exponent)
	}
	return decimal.NewFromFloat(result), nil
}

func absFunc(args []Arg) (decimal.Decimal, error) {
	x, err := oneNumber(args, "abs")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return x.Abs(), nil
}

func logFunc(args []Arg) (decimal.Decimal, error) {
	x, err := oneNumber(args, "log")
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !x.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("log: argument must be positive, got %s", x)
	}
	return decimal.NewFromFloat(math.Log(x.InexactFloat64())), nil
}

func log10Func(args []Arg) (decimal.Decimal, error) {
	x, err := oneNumber(args, "log10")
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !x.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("log10: argument must be positive, got %s", x)
	}
	return decimal.NewFromFloat(math.Log10(x.InexactFloat64())), nil
}

func expFunc(args []Arg) (decimal.Decimal, error) {
	x, err := oneNumber(args, "exp")
	if err != nil {
		return decimal.Decimal{}, err
	}
	result := math.Exp(x.InexactFloat64())
	if math.IsInf(result, 0) {
		return decimal.Decimal{}, fmt.Errorf("exp: result overflows for argument %s", x)
	}
	return decimal.NewFromFloat(result), nil
}

func sinFunc(args []Arg) (decimal.Decimal, error) {
	x, err := oneNumber(args, "sin")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromFloat(math.Sin(x.InexactFloat64())), nil
}

func cosFunc(args []Arg) (decimal.Decimal, error) {
	x, err := oneNumber(args, "cos")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromFloat(math.Cos(x.InexactFloat64())), nil
}

func tanFunc(args []Arg) (decimal.Decimal, error) {
	x, err := oneNumber(args, "tan")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromFloat(math.Tan(x.InexactFloat64())), nil
}

func asinFunc(args []Arg) (decimal.Decimal, error) {
	x, err := oneNumber(args, "asin")
	if err != nil {
		return decimal.Decimal{}, err
	}
	if x.Abs().GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Decimal{}, fmt.Errorf("asin: argument must be in range [-1, 1], got %s", x)
	}
	return decimal.NewFromFloat(math.Asin(x.InexactFloat64())), nil
}

func acosFunc(args []Arg) (decimal.Decimal, error) {
	x, err := oneNumber(args, "acos")
	if err != nil {
		return decimal.Decimal{}, err
	}
	if x.Abs().GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Decimal{}, fmt.Errorf("acos: argument must be in range [-1, 1], got %s", x)
	}
	return decimal.NewFromFloat(math.Acos(x.InexactFloat64())), nil
}

func atanFunc(args []Arg) (decimal.Decimal, error) {
	x, err := oneNumber(args, "atan")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromFloat(math.Atan(x.InexactFloat64())), nil
}

func roundFunc(args []Arg) (decimal.Decimal, error) {
	x, err := oneNumber(args, "round")
	if err != nil {
		return decimal.Decimal{}, err
	}
	// Half away from zero, same as the half-up rounding used at divisions.
	return x.Round(0), nil
}

func floorFunc(args []Arg) (decimal.Decimal, error) {
	x, err := oneNumber(args, "floor")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return x.Floor(), nil
}

func ceilFunc(args []Arg) (decimal.Decimal, error) {
	x, err := oneNumber(args, "ceil")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return x.Ceil(), nil
}

func minFunc(args []Arg) (decimal.Decimal, error) {
	if len(args) == 0 {
		return decimal.Decimal{}, fmt.Errorf("min: requires at least one argument")
	}
	result, err := args[0].Number()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("min: %w", err)
	}
	for _, arg := range args[1:] {
		current, err := arg.Number()
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("min: %w", err)
		}
		if current.LessThan(result) {
			result = current
		}
	}
	return result, nil
}

func maxFunc(args []Arg) (decimal.Decimal, error) {
	if len(args) == 0 {
		return decimal.Decimal{}, fmt.Errorf("max: requires at least one argument")
	}
	result, err := args[0].Number()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("max: %w", err)
	}
	for _, arg := range args[1:] {
		current, err := arg.Number()
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("max: %w", err)
		}
		if current.GreaterThan(result) {
			result = current
		}
	}
	return result, nil
}

func oneNumber(args []Arg, name string) (decimal.Decimal, error) {
	if err := requireArgs(args, 1, name); err != nil {
		return decimal.Decimal{}, err
	}
	x, err := args[0].Number()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", name, err)
	}
	return x, nil
}

func requireArgs(args []Arg, expected int, name string) error {
	if len(args) != expected {
		return fmt.Errorf("%s: expected %d argument(s), got %d", name, expected, len(args))
	}
	return nil
}
