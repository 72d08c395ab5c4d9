// Package risk converts a signal's confidence and the observed market
// volatility into a bounded currency allocation.
package risk

import (
	"math"

	"github.com/evdnx/papertrader/config"
)

// Fixed assumptions behind the Kelly estimate.
const (
	assumedAvgWin  = 0.08
	assumedAvgLoss = 0.035

	minFraction = 0.008
	maxFraction = 0.35

	// Every sized order is worth at least this much; anything smaller
	// is not worth the simulated fees it would attract on a live venue.
	minAmount = 15

	balanceAnchor   = 12000
	minBalanceScale = 0.25
	maxBalanceScale = 2.5
)

// riskMultipliers scales the final fraction by configured appetite.
var riskMultipliers = map[string]float64{
	"conservative": 0.6,
	"low":          0.8,
	"medium":       1.0,
	"high":         1.4,
	"aggressive":   1.8,
}

// Size turns confidence and volatility into a currency amount.
// baseSize is the caller's pre-computed default allocation; it anchors
// the fraction when Kelly sizing is disabled.
func Size(baseSize, volatility, confidence, maxAllocation float64,
	cfg config.TradingConfig, balance float64) float64 {

	if maxAllocation <= 0 {
		return minAmount
	}

	fraction := cfg.BaseFraction
	if baseSize > 0 {
		fraction = baseSize / maxAllocation
	}
	if cfg.UseKellySizing {
		fraction = kellyFraction(confidence)
	}

	// Dampen in rough markets, lean in when conviction is high.
	fraction *= 1 / (1 + 10*volatility)
	fraction *= math.Pow(confidence/100, 1.5)
	fraction *= balanceScale(balance)

	mult, ok := riskMultipliers[cfg.RiskLevel]
	if !ok {
		mult = 1.0
	}
	fraction *= mult

	fraction = math.Max(minFraction, math.Min(maxFraction, fraction))
	amount := maxAllocation * fraction
	if amount < minAmount {
		amount = minAmount
	}
	return amount
}

// kellyFraction estimates the optimal bet fraction from the signal's
// confidence treated as win probability.
func kellyFraction(confidence float64) float64 {
	winProb := confidence / 100
	f := (winProb*assumedAvgWin - (1-winProb)*assumedAvgLoss) / assumedAvgWin
	if f < 0 {
		return 0
	}
	return f
}

// balanceScale grows allocations with the square root of the balance so
// a large account does not bet linearly more.
func balanceScale(balance float64) float64 {
	if balance <= 0 {
		return minBalanceScale
	}
	s := math.Sqrt(balance / balanceAnchor)
	return math.Max(minBalanceScale, math.Min(maxBalanceScale, s))
}
