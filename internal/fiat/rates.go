// Package fiat fetches exchange rates for the coins and fiat currencies an
// amount expression may reference.
package fiat

// Rate is the exchange rate for one symbol. Rates are quoted against a
// common base so that tokens-per-fiat-unit can be derived by dividing
// through the coin's own rate.
type Rate struct {
	Ticker string
	Rate   float64
}
