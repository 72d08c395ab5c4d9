package strategy

import (
	"fmt"
	"math/rand"

	"github.com/evdnx/papertrader/types"
)

// arbitrage ignores price history entirely. It samples a synthetic
// cross-venue spread and only acts during the hours where liquidity
// would make the round-trip realistic.
type arbitrage struct {
	rng *rand.Rand
}

func newArbitrage(seed int64) *arbitrage {
	return &arbitrage{rng: rand.New(rand.NewSource(seed))}
}

// liquidityWindow is an inclusive UTC hour range during which spreads
// are considered executable.
type liquidityWindow struct {
	fromHour, toHour int
}

var arbitrageWindows = []liquidityWindow{
	{7, 10},  // European open
	{13, 17}, // US overlap
}

func inLiquidityWindow(hour int) bool {
	for _, w := range arbitrageWindows {
		if hour >= w.fromHour && hour <= w.toHour {
			return true
		}
	}
	return false
}

func (arbitrage) Name() Name { return Arbitrage }

func (s *arbitrage) Evaluate(in Input) types.TradingSignal {
	hour := in.Now.UTC().Hour()
	if !inLiquidityWindow(hour) {
		return hold(Arbitrage, 33, "outside liquidity window: spreads not executable")
	}

	// Spread between the simulated venues, signed, up to ±60 bps.
	spread := (s.rng.Float64()*2 - 1) * 0.006

	switch {
	case spread > 0.0025:
		return types.TradingSignal{
			Action:     types.ActionBuy,
			Confidence: clampConfidence(60 + spread*4000),
			Strategy:   string(Arbitrage),
			Rationale:  fmt.Sprintf("venue spread %.2f bps favours buying here", spread*10000),
			Score:      clamp01(0.5 + spread*60),
		}
	case spread < -0.0025:
		return types.TradingSignal{
			Action:     types.ActionSell,
			Confidence: clampConfidence(60 - spread*4000),
			Strategy:   string(Arbitrage),
			Rationale:  fmt.Sprintf("venue spread %.2f bps favours selling here", spread*10000),
			Score:      clamp01(0.5 + spread*60),
		}
	}
	return hold(Arbitrage, 36, fmt.Sprintf("spread %.2f bps below execution cost", spread*10000))
}
