package data

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sensorkit/synthexpr/execution/constants"
)

func TestContextProvider(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		provider := NewContextProvider(constants.EvalData)

		ctx, err := provider.AddVariablesToContext(context.Background(), map[string]decimal.Decimal{
			"temp": decimal.NewFromInt(21),
		})
		require.NoError(t, err)

		bindings, err := provider.GetVariables(ctx)
		require.NoError(t, err)
		require.Len(t, bindings, 1)
		assert.Equal(t, "21", bindings["temp"].String())
	})

	t.Run("empty context yields empty bindings", func(t *testing.T) {
		t.Parallel()
		provider := NewContextProvider(constants.EvalData)
		bindings, err := provider.GetVariables(context.Background())
		require.NoError(t, err)
		assert.Empty(t, bindings)
	})

	t.Run("later maps override earlier ones", func(t *testing.T) {
		t.Parallel()
		provider := NewContextProvider(constants.EvalData)

		ctx, err := provider.AddVariablesToContext(context.Background(),
			map[string]decimal.Decimal{"temp": decimal.NewFromInt(1), "flow": decimal.NewFromInt(5)},
			map[string]decimal.Decimal{"temp": decimal.NewFromInt(2)},
		)
		require.NoError(t, err)

		bindings, err := provider.GetVariables(ctx)
		require.NoError(t, err)
		assert.Equal(t, "2", bindings["temp"].String())
		assert.Equal(t, "5", bindings["flow"].String())
	})

	t.Run("derived context preserves existing bindings", func(t *testing.T) {
		t.Parallel()
		provider := NewContextProvider(constants.EvalData)

		ctx, err := provider.AddVariablesToContext(context.Background(),
			map[string]decimal.Decimal{"temp": decimal.NewFromInt(1)})
		require.NoError(t, err)
		ctx, err = provider.AddVariablesToContext(ctx,
			map[string]decimal.Decimal{"flow": decimal.NewFromInt(2)})
		require.NoError(t, err)

		bindings, err := provider.GetVariables(ctx)
		require.NoError(t, err)
		assert.Len(t, bindings, 2)
	})

	t.Run("parent context is untouched", func(t *testing.T) {
		t.Parallel()
		provider := NewContextProvider(constants.EvalData)
		parent := context.Background()

		_, err := provider.AddVariablesToContext(parent, map[string]decimal.Decimal{
			"temp": decimal.NewFromInt(1),
		})
		require.NoError(t, err)

		bindings, err := provider.GetVariables(parent)
		require.NoError(t, err)
		assert.Empty(t, bindings)
	})

	t.Run("empty context key", func(t *testing.T) {
		t.Parallel()
		provider := NewContextProvider("")

		_, err := provider.GetVariables(context.Background())
		assert.Error(t, err)

		_, err = provider.AddVariablesToContext(context.Background(), nil)
		assert.Error(t, err)
	})

	t.Run("foreign value under the key", func(t *testing.T) {
		t.Parallel()
		provider := NewContextProvider(constants.EvalData)
		ctx := context.WithValue(context.Background(), constants.EvalData, "not a map")

		_, err := provider.GetVariables(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid binding data type")
	})
}
