package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindow(t *testing.T) {
	t.Parallel()

	t.Run("fixed enumeration", func(t *testing.T) {
		t.Parallel()
		expected := map[string]time.Duration{
			"5m":  5 * time.Minute,
			"15m": 15 * time.Minute,
			"1h":  time.Hour,
			"6h":  6 * time.Hour,
			"12h": 12 * time.Hour,
			"24h": 24 * time.Hour,
			"7d":  7 * 24 * time.Hour,
			"30d": 30 * 24 * time.Hour,
		}
		for code, duration := range expected {
			window, err := ParseWindow(code)
			require.NoError(t, err, code)
			assert.Equal(t, code, window.Code())
			assert.Equal(t, duration, window.Duration())
		}
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		t.Parallel()
		window, err := ParseWindow("  1H ")
		require.NoError(t, err)
		assert.Equal(t, "1h", window.Code())
		assert.Equal(t, time.Hour, window.Duration())
	})

	t.Run("rejects codes outside the enumeration", func(t *testing.T) {
		t.Parallel()
		for _, code := range []string{"1hour", "2h", "10m", "1d", "60", ""} {
			_, err := ParseWindow(code)
			require.Error(t, err, code)
			assert.ErrorIs(t, err, ErrInvalidWindow, code)
		}
	})

	t.Run("error lists the valid codes", func(t *testing.T) {
		t.Parallel()
		_, err := ParseWindow("1hour")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "5m, 15m, 1h, 6h, 12h, 24h, 7d, 30d")
	})

	t.Run("start time is reference minus duration", func(t *testing.T) {
		t.Parallel()
		window, err := ParseWindow("6h")
		require.NoError(t, err)

		reference := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), window.StartTime(reference))
	})
}
