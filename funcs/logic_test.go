package funcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogicFunctions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fn       Func
		args     []Arg
		expected string
	}{
		{"if true branch", ifFunc, []Arg{num(1), num(10), num(20)}, "10"},
		{"if false branch", ifFunc, []Arg{num(0), num(10), num(20)}, "20"},
		{"if any non-zero is true", ifFunc, []Arg{num(-0.5), num(10), num(20)}, "10"},
		{"and all true", andFunc, []Arg{num(1), num(2), num(3)}, "1"},
		{"and with zero", andFunc, []Arg{num(1), num(0)}, "0"},
		{"or any true", orFunc, []Arg{num(0), num(0), num(5)}, "1"},
		{"or all false", orFunc, []Arg{num(0), num(0)}, "0"},
		{"not zero", notFunc, []Arg{num(0)}, "1"},
		{"not non-zero", notFunc, []Arg{num(7)}, "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result, err := tt.fn(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.String())
		})
	}
}

func TestLogicFunctionErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   Func
		args []Arg
	}{
		{"if wrong arity", ifFunc, []Arg{num(1), num(2)}},
		{"and single argument", andFunc, []Arg{num(1)}},
		{"or single argument", orFunc, []Arg{num(1)}},
		{"not wrong arity", notFunc, []Arg{num(1), num(2)}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.fn(tt.args)
			assert.Error(t, err)
		})
	}
}
