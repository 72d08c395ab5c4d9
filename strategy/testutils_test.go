package strategy

import (
	"math"
	"time"

	"github.com/evdnx/papertrader/regime"
	"github.com/evdnx/papertrader/types"
)

// tradingHour is a Wednesday 14:00 UTC, inside every liquidity window.
var tradingHour = time.Date(2025, 6, 11, 14, 0, 0, 0, time.UTC)

// quietHour is a Wednesday 23:00 UTC, outside the arbitrage windows.
var quietHour = time.Date(2025, 6, 11, 23, 0, 0, 0, time.UTC)

// rampUp builds n prices growing by rate per step from start.
func rampUp(start, rate float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start * math.Pow(1+rate, float64(i))
	}
	return out
}

// rampDown builds n prices shrinking by rate per step from start.
func rampDown(start, rate float64, n int) []float64 {
	return rampUp(start, -rate, n)
}

// flat builds n identical prices.
func flat(price float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = price
	}
	return out
}

// inputFor wraps a price series into an evaluator Input, classifying the
// regime the way the engine would.
func inputFor(history []float64, now time.Time) Input {
	price := 0.0
	if len(history) > 0 {
		price = history[len(history)-1]
	}
	return Input{
		Pair:    "BTC/GBP",
		Price:   price,
		History: history,
		Regime:  regime.Classify(history),
		Now:     now,
	}
}

func isActionable(a types.Action) bool {
	return a == types.ActionBuy || a == types.ActionSell || a == types.ActionHold
}
