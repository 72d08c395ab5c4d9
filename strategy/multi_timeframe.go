package strategy

import (
	"fmt"

	"github.com/evdnx/papertrader/indicator"
	"github.com/evdnx/papertrader/types"
)

// multiTimeframe demands the deepest history of all evaluators: momentum
// on the fast, mid and slow windows must line up before it signals, and
// two out of three still earns a tentative call.
type multiTimeframe struct{}

const multiTimeframeMinHistory = 100

func (multiTimeframe) Name() Name { return MultiTimeframe }

func (s *multiTimeframe) Evaluate(in Input) types.TradingSignal {
	if len(in.History) < multiTimeframeMinHistory {
		return hold(MultiTimeframe, 37, "insufficient history for multi-timeframe confirmation")
	}

	fast := indicator.Momentum(in.History, 10)
	mid := indicator.Momentum(in.History, 25)
	slow := indicator.Momentum(in.History, 50)

	up, down := 0, 0
	for _, m := range []float64{fast, mid, slow} {
		switch {
		case m > 0.005:
			up++
		case m < -0.005:
			down++
		}
	}

	switch {
	case up == 3:
		return types.TradingSignal{
			Action:     types.ActionBuy,
			Confidence: clampConfidence(84),
			Strategy:   string(MultiTimeframe),
			Rationale:  "all three timeframes aligned bullish",
			Score:      0.88,
		}
	case up == 2 && down == 0:
		return types.TradingSignal{
			Action:     types.ActionBuy,
			Confidence: clampConfidence(63),
			Strategy:   string(MultiTimeframe),
			Rationale:  fmt.Sprintf("two of three timeframes bullish (fast %.2f%%, slow %.2f%%)", fast*100, slow*100),
			Score:      0.68,
		}
	case down == 3:
		return types.TradingSignal{
			Action:     types.ActionSell,
			Confidence: clampConfidence(84),
			Strategy:   string(MultiTimeframe),
			Rationale:  "all three timeframes aligned bearish",
			Score:      0.12,
		}
	case down == 2 && up == 0:
		return types.TradingSignal{
			Action:     types.ActionSell,
			Confidence: clampConfidence(63),
			Strategy:   string(MultiTimeframe),
			Rationale:  fmt.Sprintf("two of three timeframes bearish (fast %.2f%%, slow %.2f%%)", fast*100, slow*100),
			Score:      0.32,
		}
	}
	return hold(MultiTimeframe, 41, "timeframes conflicted")
}
