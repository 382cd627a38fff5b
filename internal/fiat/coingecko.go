package fiat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"resty.dev/v3"

	"github.com/miketwenty1/balanceofsatoshis/internal/ctxlog"
)

const (
	defaultBaseURL = "https://api.coingecko.com"
	ratesPath      = "/api/v3/exchange_rates"
	maxFetchTries  = 3
)

// CoinGecko fetches rates from the CoinGecko exchange-rates endpoint, which
// quotes every symbol against BTC as the common base.
type CoinGecko struct {
	client *resty.Client
}

// NewCoinGecko builds a rate source against the given base URL. An empty
// URL selects the public CoinGecko API.
func NewCoinGecko(baseURL string, timeout time.Duration) *CoinGecko {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &CoinGecko{client: client}
}

// exchangeRates is the wire shape of the exchange-rates response.
type exchangeRates struct {
	Rates map[string]struct {
		Name  string  `json:"name"`
		Unit  string  `json:"unit"`
		Value float64 `json:"value"`
	} `json:"rates"`
}

// GetRates returns a rate for every requested symbol. A missing symbol is
// an error: downstream amount evaluation cannot proceed on partial rates.
func (c *CoinGecko) GetRates(ctx context.Context, symbols []string) ([]Rate, error) {
	logger := ctxlog.FromContext(ctx)

	var body exchangeRates
	fetch := func() error {
		res, err := c.client.R().
			SetContext(ctx).
			SetResult(&body).
			Get(ratesPath)
		if err != nil {
			return err
		}
		if res.IsError() {
			return fmt.Errorf("unexpected rates response status: %s", res.Status())
		}
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxFetchTries)
	if err := backoff.Retry(fetch, backoff.WithContext(policy, ctx)); err != nil {
		return nil, fmt.Errorf("failed getting exchange rates: %w", err)
	}
	logger.Debug("Fetched exchange rates.", "count", len(body.Rates))

	rates := make([]Rate, 0, len(symbols))
	for _, symbol := range symbols {
		entry, ok := body.Rates[strings.ToLower(symbol)]
		if !ok {
			return nil, fmt.Errorf("rates response is missing symbol %q", symbol)
		}
		rates = append(rates, Rate{Ticker: strings.ToUpper(symbol), Rate: entry.Value})
	}
	return rates, nil
}
