// Package regime classifies the current market behaviour from the
// rolling price window. Classification is stateless: every call derives a
// fresh regime from the prices it is handed.
package regime

import (
	"math"

	"github.com/evdnx/papertrader/indicator"
	"github.com/evdnx/papertrader/types"
)

// minSamples is the history needed before classification is meaningful.
const minSamples = 40

// Threshold constants. First match wins, in the order they appear in
// Classify.
const (
	highVolThreshold = 0.08
	trendMomentum    = 0.04
	trendSlope       = 0.025
	breakoutMomentum = 0.06
)

// Classify derives the regime from prices (oldest first). With fewer than
// minSamples samples it falls back to a neutral SIDEWAYS read.
func Classify(prices []float64) types.MarketRegime {
	if len(prices) < minSamples {
		return types.MarketRegime{
			Type:       types.Sideways,
			Confidence: 0.5,
			Duration:   1,
			Quality:    "insufficient data",
		}
	}

	momentum := momentumOf(prices)
	volatility := indicator.Volatility(prices)
	trend := trendOf(prices)

	switch {
	case volatility > highVolThreshold:
		return types.MarketRegime{
			Type:       types.HighVolatility,
			Confidence: 0.85,
			Volatility: volatility,
			Momentum:   momentum,
			Strength:   volatility * 10,
			Duration:   2,
			Quality:    "choppy",
		}
	case momentum > trendMomentum && trend > trendSlope:
		return types.MarketRegime{
			Type:       types.TrendingUp,
			Confidence: 0.8,
			Volatility: volatility,
			Momentum:   momentum,
			Strength:   momentum * 10,
			Duration:   4,
			Quality:    "clean trend",
		}
	case momentum < -trendMomentum && trend < -trendSlope:
		return types.MarketRegime{
			Type:       types.TrendingDown,
			Confidence: 0.8,
			Volatility: volatility,
			Momentum:   momentum,
			Strength:   math.Abs(momentum) * 10,
			Duration:   4,
			Quality:    "clean trend",
		}
	case math.Abs(momentum) > breakoutMomentum:
		return types.MarketRegime{
			Type:       types.Breakout,
			Confidence: 0.7,
			Volatility: volatility,
			Momentum:   momentum,
			Strength:   math.Abs(momentum) * 8,
			Duration:   1,
			Quality:    "unconfirmed",
		}
	default:
		return types.MarketRegime{
			Type:       types.Sideways,
			Confidence: 0.65,
			Volatility: volatility,
			Momentum:   momentum,
			Strength:   1,
			Duration:   3,
			Quality:    "range bound",
		}
	}
}

// momentumOf compares the average of the last 15 samples to the 15
// before them.
func momentumOf(prices []float64) float64 {
	recent := indicator.SMA(prices, 15)
	prior := indicator.SMA(prices[:len(prices)-15], 15)
	if prior == 0 {
		return 0
	}
	return (recent - prior) / prior
}

// trendOf compares the fast (8) and slow (25) moving averages.
func trendOf(prices []float64) float64 {
	fast := indicator.SMA(prices, 8)
	slow := indicator.SMA(prices, 25)
	if slow == 0 {
		return 0
	}
	return (fast - slow) / slow
}
