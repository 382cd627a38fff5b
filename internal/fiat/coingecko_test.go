package fiat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ratesBody = `{
  "rates": {
    "btc": {"name": "Bitcoin", "unit": "BTC", "value": 1.0},
    "ltc": {"name": "Litecoin", "unit": "LTC", "value": 540.5},
    "eur": {"name": "Euro", "unit": "€", "value": 40000},
    "usd": {"name": "US Dollar", "unit": "$", "value": 43000}
  }
}`

func TestGetRates(t *testing.T) {
	t.Run("returns a rate per requested symbol", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v3/exchange_rates", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(ratesBody))
		}))
		defer server.Close()

		source := NewCoinGecko(server.URL, time.Second)
		rates, err := source.GetRates(context.Background(), []string{"BTC", "EUR", "USD"})
		require.NoError(t, err)
		require.Len(t, rates, 3)
		assert.Equal(t, Rate{Ticker: "BTC", Rate: 1}, rates[0])
		assert.Equal(t, Rate{Ticker: "EUR", Rate: 40000}, rates[1])
		assert.Equal(t, Rate{Ticker: "USD", Rate: 43000}, rates[2])
	})

	t.Run("errors when a symbol is missing", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(ratesBody))
		}))
		defer server.Close()

		source := NewCoinGecko(server.URL, time.Second)
		_, err := source.GetRates(context.Background(), []string{"BTC", "GBP"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"GBP"`)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(ratesBody))
		}))
		defer server.Close()

		source := NewCoinGecko(server.URL, time.Second)
		rates, err := source.GetRates(context.Background(), []string{"LTC"})
		require.NoError(t, err)
		require.Len(t, rates, 1)
		assert.InDelta(t, 540.5, rates[0].Rate, 0.001)
		assert.GreaterOrEqual(t, calls.Load(), int32(2))
	})
}
