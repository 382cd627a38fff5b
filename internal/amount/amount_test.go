package amount

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	vars := map[string]float64{
		"eur":       2500,
		"usd":       2000,
		"liquidity": 1000000,
		"inbound":   300000,
	}

	t.Run("bare number", func(t *testing.T) {
		got, err := Evaluate("2500", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2500), got)
	})

	t.Run("fiat shorthand", func(t *testing.T) {
		got, err := Evaluate("1eur", vars)
		require.NoError(t, err)
		assert.Equal(t, int64(2500), got)
	})

	t.Run("fractional shorthand rounds down", func(t *testing.T) {
		got, err := Evaluate("0.5liquidity", vars)
		require.NoError(t, err)
		assert.Equal(t, int64(500000), got)
	})

	t.Run("uppercase input", func(t *testing.T) {
		got, err := Evaluate("2EUR", vars)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), got)
	})

	t.Run("arithmetic", func(t *testing.T) {
		got, err := Evaluate("liquidity/2 - inbound", vars)
		require.NoError(t, err)
		assert.Equal(t, int64(200000), got)
	})

	t.Run("explicit multiplication", func(t *testing.T) {
		got, err := Evaluate("2*usd", vars)
		require.NoError(t, err)
		assert.Equal(t, int64(4000), got)
	})

	t.Run("zero", func(t *testing.T) {
		got, err := Evaluate("0", vars)
		require.NoError(t, err)
		assert.Zero(t, got)
	})

	t.Run("unknown variable", func(t *testing.T) {
		_, err := Evaluate("1gbp", vars)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1gbp")
	})

	t.Run("malformed expression", func(t *testing.T) {
		_, err := Evaluate("1eur +", vars)
		assert.Error(t, err)
	})
}
