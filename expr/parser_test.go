package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("valid expression", func(t *testing.T) {
		t.Parallel()
		expression, err := Parse("(temp_f - 32) * 5 / 9")
		require.NoError(t, err)
		require.NotNil(t, expression)
		assert.Equal(t, "(temp_f - 32) * 5 / 9", expression.Source())
		assert.Len(t, expression.ID(), checksumLength)
		assert.False(t, expression.CreatedAt().IsZero())
	})

	t.Run("identical sources share an ID", func(t *testing.T) {
		t.Parallel()
		first, err := Parse("a + b")
		require.NoError(t, err)
		second, err := Parse("a + b")
		require.NoError(t, err)
		third, err := Parse("a + c")
		require.NoError(t, err)

		assert.Equal(t, first.ID(), second.ID())
		assert.NotEqual(t, first.ID(), third.ID())
	})

	t.Run("variables are collected and sorted", func(t *testing.T) {
		t.Parallel()
		expression, err := Parse("zeta + alpha * max(beta, alpha) - 3")
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "beta", "zeta"}, expression.Variables())
	})

	t.Run("string literals are not variables", func(t *testing.T) {
		t.Parallel()
		expression, err := Parse(`avg("temperature", "1h") + offset`)
		require.NoError(t, err)
		assert.Equal(t, []string{"offset"}, expression.Variables())
	})

	t.Run("empty expression", func(t *testing.T) {
		t.Parallel()
		for _, source := range []string{"", "   ", "\t\n"} {
			_, err := Parse(source)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrEmptyExpression)
		}
	})

	t.Run("missing closing paren", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("(a + b")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMismatchedParens)
	})

	t.Run("stray closing paren", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("a + b)")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMismatchedParens)
	})

	t.Run("unclosed call arguments", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("max(1, 2")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMismatchedParens)
	})

	t.Run("chained comparison rejected", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("a > b > c")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrChainedComparison)
	})

	t.Run("parenthesized groups get their own comparison", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("(a > b) + (c < d)")
		assert.NoError(t, err)
	})

	t.Run("call arguments get their own comparison", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("if(a > b, 1, 0) + (c >= d)")
		assert.NoError(t, err)
	})

	t.Run("dangling operator", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("a +")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSyntax)
	})

	t.Run("adjacent operands", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("1 2")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSyntax)
	})

	t.Run("error carries the offending fragment", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("a > b > c")
		require.Error(t, err)

		var evalErr *EvaluationError
		require.ErrorAs(t, err, &evalErr)
		assert.Equal(t, ">", evalErr.Fragment)
		assert.Contains(t, err.Error(), "expression evaluation failed")
	})
}
