package funcs

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Arg is a single function argument: either a decimal number or a string
// literal (time-window codes and variable names reach statistical functions
// as strings).
type Arg struct {
	text     string
	number   decimal.Decimal
	isString bool
}

// NumberArg wraps a decimal value as an argument.
func NumberArg(d decimal.Decimal) Arg {
	return Arg{number: d}
}

// StringArg wraps a string literal as an argument. The value is the literal
// content without its surrounding quotes.
func StringArg(s string) Arg {
	return Arg{text: s, isString: true}
}

// IsString reports whether the argument was written as a string literal.
func (a Arg) IsString() bool {
	return a.isString
}

// Number returns the argument as a decimal. String arguments are parsed,
// matching the original engine's tolerance for numeric strings.
func (a Arg) Number() (decimal.Decimal, error) {
	if !a.isString {
		return a.number, nil
	}
	d, err := decimal.NewFromString(a.text)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("cannot convert %q to a number", a.text)
	}
	return d, nil
}

// Text returns the argument as a string. Numbers render in plain decimal
// notation.
func (a Arg) Text() string {
	if a.isString {
		return a.text
	}
	return a.number.String()
}
