package push

import (
	"fmt"

	"github.com/miketwenty1/balanceofsatoshis/internal/fiat"
)

// Process-wide immutable tables: the coins and fiat currencies an amount
// expression may reference, and the coin each network settles in.
var (
	coinSymbols  = []string{"BTC", "LTC"}
	fiatSymbols  = []string{"EUR", "USD"}
	networkCoins = map[string]string{
		"btc":        "BTC",
		"btctestnet": "BTC",
		"ltc":        "LTC",
	}
)

// rateSymbols is the full symbol set requested from the price feed.
func rateSymbols() []string {
	symbols := make([]string, 0, len(coinSymbols)+len(fiatSymbols))
	symbols = append(symbols, coinSymbols...)
	return append(symbols, fiatSymbols...)
}

// fiatUnit is the token value of one unit of a fiat currency.
type fiatUnit struct {
	Fiat string
	Unit float64
}

// fiatUnits derives tokens-per-fiat-unit for every configured fiat
// currency, scaled through the network coin's own rate so that networks
// whose coin differs from the quoted pair still evaluate correctly.
func fiatUnits(network string, rates []fiat.Rate) ([]fiatUnit, error) {
	coin, ok := networkCoins[network]
	if !ok {
		return nil, fmt.Errorf("unsupported network %q for push payment", network)
	}

	byTicker := make(map[string]float64, len(rates))
	for _, rate := range rates {
		byTicker[rate.Ticker] = rate.Rate
	}

	coinRate, ok := byTicker[coin]
	if !ok {
		return nil, fmt.Errorf("rates are missing network coin %q", coin)
	}

	units := make([]fiatUnit, 0, len(fiatSymbols))
	for _, symbol := range fiatSymbols {
		rate, ok := byTicker[symbol]
		if !ok {
			return nil, fmt.Errorf("rates are missing fiat %q", symbol)
		}
		if rate == 0 {
			return nil, fmt.Errorf("rate for fiat %q is zero", symbol)
		}
		units = append(units, fiatUnit{Fiat: symbol, Unit: 1e8 / rate * coinRate})
	}
	return units, nil
}
