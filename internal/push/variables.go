package push

import (
	"strings"

	"github.com/miketwenty1/balanceofsatoshis/internal/lightning"
)

// amountVariables assembles the variable set the amount expression
// evaluator consumes: one entry per fiat unit plus the liquidity figures
// for the destination and the optional outbound peer. The two peers are
// computed independently since they answer different liquidity questions.
// The map is built fresh per run and never mutated afterwards.
func amountVariables(channels []lightning.Channel, destination, outKey string, units []fiatUnit) map[string]float64 {
	destLiquidity := peerSnapshot(channels, destination)
	outLiquidity := peerSnapshot(channels, outKey)

	variables := map[string]float64{
		"inbound":       float64(destLiquidity.Inbound),
		"liquidity":     float64(destLiquidity.Capacity),
		"outbound":      float64(destLiquidity.Outbound),
		"out_inbound":   float64(outLiquidity.Inbound),
		"out_liquidity": float64(outLiquidity.Capacity),
		"out_outbound":  float64(outLiquidity.Outbound),
	}
	for _, unit := range units {
		variables[strings.ToLower(unit.Fiat)] = unit.Unit
	}
	return variables
}
