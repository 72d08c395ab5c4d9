package strategy

import (
	"fmt"

	"github.com/evdnx/papertrader/indicator"
	"github.com/evdnx/papertrader/types"
)

// momentum rides the MACD histogram confirmed by an EMA crossover.
type momentum struct{}

const momentumMinHistory = 35

func (momentum) Name() Name { return Momentum }

func (s *momentum) Evaluate(in Input) types.TradingSignal {
	if len(in.History) < momentumMinHistory {
		return hold(Momentum, 36, "insufficient history for momentum")
	}

	macd, signalLine, hist := indicator.MACD(in.History)
	fast := indicator.EMA(in.History, 12)
	slow := indicator.EMA(in.History, 26)
	drift := indicator.Momentum(in.History, 10)

	// Normalise the histogram against price so the thresholds work for
	// any instrument.
	relHist := 0.0
	if in.Price > 0 {
		relHist = hist / in.Price
	}

	switch {
	case relHist > 0.004 && fast > slow && drift > 0.01:
		return types.TradingSignal{
			Action:     types.ActionBuy,
			Confidence: clampConfidence(80),
			Strategy:   string(Momentum),
			Rationale:  fmt.Sprintf("strong upside momentum: MACD %.2f over signal %.2f, fast EMA above slow", macd, signalLine),
			Score:      0.85,
		}
	case relHist > 0.001 && fast > slow:
		return types.TradingSignal{
			Action:     types.ActionBuy,
			Confidence: clampConfidence(66),
			Strategy:   string(Momentum),
			Rationale:  fmt.Sprintf("building momentum: MACD histogram %.2f positive", hist),
			Score:      0.7,
		}
	case relHist < -0.004 && fast < slow && drift < -0.01:
		return types.TradingSignal{
			Action:     types.ActionSell,
			Confidence: clampConfidence(80),
			Strategy:   string(Momentum),
			Rationale:  fmt.Sprintf("strong downside momentum: MACD %.2f under signal %.2f, fast EMA below slow", macd, signalLine),
			Score:      0.15,
		}
	case relHist < -0.001 && fast < slow:
		return types.TradingSignal{
			Action:     types.ActionSell,
			Confidence: clampConfidence(66),
			Strategy:   string(Momentum),
			Rationale:  fmt.Sprintf("fading momentum: MACD histogram %.2f negative", hist),
			Score:      0.3,
		}
	}
	return hold(Momentum, 40, "momentum flat: MACD and EMAs disagree")
}
