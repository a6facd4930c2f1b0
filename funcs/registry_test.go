package funcs

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		t.Parallel()
		r := NewDefaultRegistry()
		for _, name := range []string{"sqrt", "SQRT", "Sqrt", "movingAvg", "MOVINGAVG", "percentChange"} {
			assert.True(t, r.Has(name), name)
			fn, ok := r.Lookup(name)
			assert.True(t, ok, name)
			assert.NotNil(t, fn, name)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()
		r := NewDefaultRegistry()
		assert.False(t, r.Has("frobnicate"))
		_, ok := r.Lookup("frobnicate")
		assert.False(t, ok)
		_, ok = r.Info("frobnicate")
		assert.False(t, ok)
	})

	t.Run("re-registering overwrites", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		r.Register("f", CategoryMath, Func(func([]Arg) (decimal.Decimal, error) {
			return decimal.NewFromInt(1), nil
		}), "first")
		r.Register("F", CategoryLogic, Func(func([]Arg) (decimal.Decimal, error) {
			return decimal.NewFromInt(2), nil
		}), "second")

		fn, ok := r.Lookup("f")
		require.True(t, ok)
		result, err := fn.Invoke(Invocation{})
		require.NoError(t, err)
		assert.Equal(t, "2", result.String())

		info, ok := r.Info("f")
		require.True(t, ok)
		assert.Equal(t, CategoryLogic, info.Category)
		assert.Equal(t, "second", info.Description)
	})

	t.Run("default catalog introspection", func(t *testing.T) {
		t.Parallel()
		r := NewDefaultRegistry()

		functions := r.ListFunctions()
		assert.Len(t, functions, 31)

		info, ok := r.Info("avg")
		require.True(t, ok)
		assert.Equal(t, CategoryStatistical, info.Category)
		assert.NotEmpty(t, info.Description)

		info, ok = r.Info("if")
		require.True(t, ok)
		assert.Equal(t, CategoryLogic, info.Category)
	})

	t.Run("list by category is sorted", func(t *testing.T) {
		t.Parallel()
		byCategory := NewDefaultRegistry().ListByCategory()

		assert.Equal(t, []string{"and", "if", "not", "or"}, byCategory[CategoryLogic])
		assert.Equal(t, []string{
			"avg", "count", "maxtime", "median", "mintime",
			"movingavg", "percentchange", "rate", "stddev", "sum",
		}, byCategory[CategoryStatistical])
		assert.Len(t, byCategory[CategoryMath], 17)
	})
}

func TestArg(t *testing.T) {
	t.Parallel()

	t.Run("number argument", func(t *testing.T) {
		t.Parallel()
		arg := NumberArg(decimal.NewFromFloat(2.5))
		assert.False(t, arg.IsString())
		assert.Equal(t, "2.5", arg.Text())

		value, err := arg.Number()
		require.NoError(t, err)
		assert.Equal(t, "2.5", value.String())
	})

	t.Run("string argument", func(t *testing.T) {
		t.Parallel()
		arg := StringArg("temperature")
		assert.True(t, arg.IsString())
		assert.Equal(t, "temperature", arg.Text())

		_, err := arg.Number()
		assert.Error(t, err)
	})

	t.Run("numeric string coerces", func(t *testing.T) {
		t.Parallel()
		value, err := StringArg("3.5").Number()
		require.NoError(t, err)
		assert.Equal(t, "3.5", value.String())
	})
}
