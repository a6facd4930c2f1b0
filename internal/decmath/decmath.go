// Package decmath applies the engine's fixed evaluation precision: 10
// significant digits, rounding half away from zero, applied at every
// division. Addition, subtraction and multiplication stay exact.
package decmath

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// Precision is the number of significant digits kept by Div.
const Precision = 10

// ErrDivisionByZero is returned by Div when the divisor is zero. Division by
// zero is a hard failure, never an infinity or a default value.
var ErrDivisionByZero = errors.New("division by zero")

// Div divides a by b and rounds the quotient to Precision significant
// digits, half away from zero.
func Div(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Decimal{}, ErrDivisionByZero
	}

	// Carry enough fractional digits that RoundSignificant always has a full
	// Precision digits plus guard digits to work with, regardless of the
	// quotient's magnitude.
	scale := int32(Precision+2) - magnitude(a) + magnitude(b)
	if scale < 0 {
		scale = 0
	}
	return RoundSignificant(a.DivRound(b, scale)), nil
}

// RoundSignificant rounds d to Precision significant digits, half away from
// zero. Values with fewer significant digits are returned unchanged.
func RoundSignificant(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return d
	}
	places := int32(Precision-1) - magnitude(d)
	if -d.Exponent() <= places {
		return d
	}
	return d.Round(places)
}

// magnitude returns the base-10 position of the most significant digit of d:
// 0 for values in [1,10), -1 for [0.1,1), 2 for [100,1000), and so on.
func magnitude(d decimal.Decimal) int32 {
	coefficient := new(big.Int).Abs(d.Coefficient())
	digits := int32(len(coefficient.String()))
	return digits - 1 + d.Exponent()
}
