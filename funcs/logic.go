package funcs

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Logic built-ins. Truth follows the comparison encoding: zero is false,
// anything else is true, and results are exactly 0 or 1.

func ifFunc(args []Arg) (decimal.Decimal, error) {
	if err := requireArgs(args, 3, "if"); err != nil {
		return decimal.Decimal{}, err
	}
	condition, err := args[0].Number()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("if: %w", err)
	}
	trueValue, err := args[1].Number()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("if: %w", err)
	}
	falseValue, err := args[2].Number()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("if: %w", err)
	}
	if !condition.IsZero() {
		return trueValue, nil
	}
	return falseValue, nil
}

func andFunc(args []Arg) (decimal.Decimal, error) {
	if len(args) < 2 {
		return decimal.Decimal{}, fmt.Errorf("and: requires at least 2 arguments, got %d", len(args))
	}
	for _, arg := range args {
		value, err := arg.Number()
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("and: %w", err)
		}
		if value.IsZero() {
			return decimal.Zero, nil
		}
	}
	return decimal.NewFromInt(1), nil
}

func orFunc(args []Arg) (decimal.Decimal, error) {
	if len(args) < 2 {
		return decimal.Decimal{}, fmt.Errorf("or: requires at least 2 arguments, got %d", len(args))
	}
	for _, arg := range args {
		value, err := arg.Number()
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("or: %w", err)
		}
		if !value.IsZero() {
			return decimal.NewFromInt(1), nil
		}
	}
	return decimal.Zero, nil
}

func notFunc(args []Arg) (decimal.Decimal, error) {
	if err := requireArgs(args, 1, "not"); err != nil {
		return decimal.Decimal{}, err
	}
	value, err := args[0].Number()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("not: %w", err)
	}
	if value.IsZero() {
		return decimal.NewFromInt(1), nil
	}
	return decimal.Zero, nil
}
