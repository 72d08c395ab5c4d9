// Package signal adjusts the base strategy output for the regime it was
// produced in: confidence correction, an expected-return estimate, a
// risk-level classification and concrete stop/target prices.
package signal

import (
	"math"
	"math/rand"
	"time"

	"github.com/evdnx/papertrader/config"
	"github.com/evdnx/papertrader/strategy"
	"github.com/evdnx/papertrader/types"
)

const (
	minConfidence = 30
	maxConfidence = 95

	minStopPct   = 0.015
	maxStopPct   = 0.12
	minTargetPct = 0.025
	maxTargetPct = 0.20
)

// confidenceDeltas is the strategy-by-regime correction table. Positive
// means the strategy historically does better in that regime. The delta
// is scaled by the classifier's own confidence before being applied.
var confidenceDeltas = map[strategy.Name]map[types.RegimeType]int{
	strategy.MeanReversion: {
		types.TrendingUp: -8, types.TrendingDown: -8, types.Sideways: 12,
		types.HighVolatility: -4, types.Breakout: -10,
	},
	strategy.Momentum: {
		types.TrendingUp: 12, types.TrendingDown: 12, types.Sideways: -10,
		types.HighVolatility: -6, types.Breakout: 8,
	},
	strategy.Neural: {
		types.TrendingUp: 5, types.TrendingDown: 5, types.Sideways: 2,
		types.HighVolatility: -3, types.Breakout: 3,
	},
	strategy.Arbitrage: {
		types.TrendingUp: 0, types.TrendingDown: 0, types.Sideways: 6,
		types.HighVolatility: 8, types.Breakout: 2,
	},
	strategy.Scalping: {
		types.TrendingUp: 4, types.TrendingDown: 4, types.Sideways: 6,
		types.HighVolatility: 10, types.Breakout: -5,
	},
	strategy.Swing: {
		types.TrendingUp: 10, types.TrendingDown: 10, types.Sideways: -6,
		types.HighVolatility: -8, types.Breakout: 5,
	},
	strategy.MultiTimeframe: {
		types.TrendingUp: 9, types.TrendingDown: 9, types.Sideways: -4,
		types.HighVolatility: -5, types.Breakout: 6,
	},
	strategy.Ensemble: {
		types.TrendingUp: 6, types.TrendingDown: 6, types.Sideways: 4,
		types.HighVolatility: 2, types.Breakout: 4,
	},
}

// expectedReturnMultiplier scales the estimate per regime.
var expectedReturnMultiplier = map[types.RegimeType]float64{
	types.TrendingUp:     1.3,
	types.TrendingDown:   1.3,
	types.Sideways:       0.7,
	types.HighVolatility: 1.6,
	types.Breakout:       1.4,
}

// regimeRiskScore feeds the risk-level classification.
var regimeRiskScore = map[types.RegimeType]int{
	types.Sideways:       0,
	types.TrendingUp:     1,
	types.TrendingDown:   2,
	types.Breakout:       3,
	types.HighVolatility: 4,
}

// configRiskScore maps the configured risk label to its bucket.
var configRiskScore = map[string]int{
	"conservative": 0,
	"low":          0,
	"medium":       1,
	"high":         2,
	"aggressive":   3,
}

// Processor finalises base signals. Its only state is the randomness
// used for the expected-return damping.
type Processor struct {
	rng *rand.Rand
}

// NewProcessor seeds the damping source from the clock.
func NewProcessor() *Processor {
	return &Processor{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewProcessorWithRand injects the randomness source for tests.
func NewProcessorWithRand(rng *rand.Rand) *Processor {
	return &Processor{rng: rng}
}

// Process returns a copy of sig with confidence, expected return, risk
// level, regime and the stop/target prices filled in.
func (p *Processor) Process(sig types.TradingSignal, reg types.MarketRegime,
	volatility, price float64, cfg config.TradingConfig) types.TradingSignal {

	out := sig
	out.Regime = reg.Type
	out.Confidence = p.adjustConfidence(sig, reg)
	out.ExpectedReturn = p.expectedReturn(sig.Action, reg, volatility)
	out.Risk = riskLevel(volatility, reg.Type, cfg.RiskLevel)
	out.StopLoss, out.TakeProfit = exitPrices(sig.Action, price, volatility, cfg)
	return out
}

func (p *Processor) adjustConfidence(sig types.TradingSignal, reg types.MarketRegime) float64 {
	delta := 0
	if row, ok := confidenceDeltas[strategy.Name(sig.Strategy)]; ok {
		delta = row[reg.Type]
	}
	adjusted := sig.Confidence + float64(delta)*reg.Confidence
	return math.Max(minConfidence, math.Min(maxConfidence, adjusted))
}

func (p *Processor) expectedReturn(action types.Action, reg types.MarketRegime, volatility float64) float64 {
	base := 0.0
	switch action {
	case types.ActionBuy:
		base = volatility * 2.5 * reg.Strength
	case types.ActionSell:
		base = volatility * 2.2 * reg.Strength
	default:
		base = volatility * 0.5 * reg.Strength
	}
	mult, ok := expectedReturnMultiplier[reg.Type]
	if !ok {
		mult = 1
	}
	damping := 0.6 + p.rng.Float64()*0.8
	return base * mult * damping
}

// riskLevel sums three independent scores: volatility bucket (0-4),
// regime bucket (0-4) and the configured appetite (0-3).
func riskLevel(volatility float64, reg types.RegimeType, configured string) types.RiskLevel {
	volScore := 0
	switch {
	case volatility > 0.10:
		volScore = 4
	case volatility > 0.06:
		volScore = 3
	case volatility > 0.03:
		volScore = 2
	case volatility > 0.015:
		volScore = 1
	}
	total := volScore + regimeRiskScore[reg] + configRiskScore[configured]
	switch {
	case total <= 2:
		return types.RiskLow
	case total <= 5:
		return types.RiskMedium
	case total <= 8:
		return types.RiskHigh
	default:
		return types.RiskExtreme
	}
}

// exitPrices derives stop-loss and take-profit prices for the action.
// HOLD carries no exits.
func exitPrices(action types.Action, price, volatility float64, cfg config.TradingConfig) (stop, target float64) {
	if action == types.ActionHold || price <= 0 {
		return 0, 0
	}
	stopPct := math.Max(minStopPct, math.Min(maxStopPct, cfg.StopLossPct+volatility*0.5))
	targetPct := math.Max(minTargetPct, math.Min(maxTargetPct, cfg.TakeProfitPct+volatility*0.8))
	if action == types.ActionBuy {
		return price * (1 - stopPct), price * (1 + targetPct)
	}
	return price * (1 + stopPct), price * (1 - targetPct)
}
