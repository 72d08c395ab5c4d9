package signal

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evdnx/papertrader/config"
	"github.com/evdnx/papertrader/strategy"
	"github.com/evdnx/papertrader/types"
)

func newTestProcessor() *Processor {
	return NewProcessorWithRand(rand.New(rand.NewSource(1)))
}

func baseSignal(action types.Action, confidence float64, name strategy.Name) types.TradingSignal {
	return types.TradingSignal{
		Action:     action,
		Confidence: confidence,
		Strategy:   string(name),
		Score:      0.7,
	}
}

func TestProcess_ConfidenceClamped(t *testing.T) {
	p := newTestProcessor()
	cfg := config.Default()

	// A momentum signal in its favourite regime gets boosted but never
	// past 95.
	reg := types.MarketRegime{Type: types.TrendingUp, Confidence: 1, Strength: 2}
	out := p.Process(baseSignal(types.ActionBuy, 94, strategy.Momentum), reg, 0.02, 30000, cfg)
	assert.LessOrEqual(t, out.Confidence, 95.0)
	assert.GreaterOrEqual(t, out.Confidence, 30.0)

	// Mean reversion in a breakout is punished but never below 30.
	reg = types.MarketRegime{Type: types.Breakout, Confidence: 1, Strength: 2}
	out = p.Process(baseSignal(types.ActionSell, 31, strategy.MeanReversion), reg, 0.02, 30000, cfg)
	assert.GreaterOrEqual(t, out.Confidence, 30.0)
}

func TestProcess_DeltaScaledByRegimeConfidence(t *testing.T) {
	p := newTestProcessor()
	cfg := config.Default()

	// Momentum +12 in TRENDING_UP, scaled by regime confidence 0.5.
	reg := types.MarketRegime{Type: types.TrendingUp, Confidence: 0.5, Strength: 1}
	out := p.Process(baseSignal(types.ActionBuy, 60, strategy.Momentum), reg, 0.02, 30000, cfg)
	assert.InDelta(t, 66, out.Confidence, 1e-9)
}

func TestProcess_RiskLevels(t *testing.T) {
	p := newTestProcessor()

	calm := types.MarketRegime{Type: types.Sideways, Confidence: 0.6}
	cfg := config.Default()
	cfg.RiskLevel = "conservative"
	out := p.Process(baseSignal(types.ActionBuy, 70, strategy.Swing), calm, 0.001, 30000, cfg)
	assert.Equal(t, types.RiskLow, out.Risk)

	wild := types.MarketRegime{Type: types.HighVolatility, Confidence: 0.9}
	cfg.RiskLevel = "aggressive"
	out = p.Process(baseSignal(types.ActionBuy, 70, strategy.Swing), wild, 0.12, 30000, cfg)
	assert.Equal(t, types.RiskExtreme, out.Risk)
}

func TestProcess_ExitPrices(t *testing.T) {
	p := newTestProcessor()
	cfg := config.Default()
	reg := types.MarketRegime{Type: types.TrendingUp, Confidence: 0.8, Strength: 1}
	price := 100.0

	buy := p.Process(baseSignal(types.ActionBuy, 70, strategy.Momentum), reg, 0.02, price, cfg)
	require.Less(t, buy.StopLoss, price)
	require.Greater(t, buy.TakeProfit, price)
	// Stop within [1.5%,12%], target within [2.5%,20%] of price.
	assert.GreaterOrEqual(t, buy.StopLoss, price*(1-0.12))
	assert.LessOrEqual(t, buy.StopLoss, price*(1-0.015))
	assert.GreaterOrEqual(t, buy.TakeProfit, price*(1+0.025))
	assert.LessOrEqual(t, buy.TakeProfit, price*(1+0.20))

	sell := p.Process(baseSignal(types.ActionSell, 70, strategy.Momentum), reg, 0.02, price, cfg)
	assert.Greater(t, sell.StopLoss, price)
	assert.Less(t, sell.TakeProfit, price)

	hold := p.Process(baseSignal(types.ActionHold, 40, strategy.Momentum), reg, 0.02, price, cfg)
	assert.Zero(t, hold.StopLoss)
	assert.Zero(t, hold.TakeProfit)
}

func TestProcess_ExpectedReturnDampedButBounded(t *testing.T) {
	p := newTestProcessor()
	cfg := config.Default()
	reg := types.MarketRegime{Type: types.HighVolatility, Confidence: 0.85, Strength: 1.2}

	// damping is in [0.6,1.4]; the undamped estimate bounds the result.
	undamped := 0.05 * 2.5 * 1.2 * 1.6
	for i := 0; i < 100; i++ {
		out := p.Process(baseSignal(types.ActionBuy, 70, strategy.Scalping), reg, 0.05, 30000, cfg)
		assert.GreaterOrEqual(t, out.ExpectedReturn, undamped*0.6-1e-9)
		assert.LessOrEqual(t, out.ExpectedReturn, undamped*1.4+1e-9)
	}
}

func TestProcess_SetsRegimeType(t *testing.T) {
	p := newTestProcessor()
	reg := types.MarketRegime{Type: types.Breakout, Confidence: 0.7}
	out := p.Process(baseSignal(types.ActionBuy, 70, strategy.Neural), reg, 0.02, 30000, config.Default())
	assert.Equal(t, types.Breakout, out.Regime)
}
