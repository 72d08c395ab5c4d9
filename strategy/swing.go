package strategy

import (
	"fmt"

	"github.com/evdnx/papertrader/indicator"
	"github.com/evdnx/papertrader/types"
)

// swing looks for multi-session moves: momentum over three widening
// windows has to agree before it commits.
type swing struct{}

const swingMinHistory = 50

func (swing) Name() Name { return Swing }

func (s *swing) Evaluate(in Input) types.TradingSignal {
	if len(in.History) < swingMinHistory {
		return hold(Swing, 36, "insufficient history for swing analysis")
	}

	short := indicator.Momentum(in.History, 10)
	mid := indicator.Momentum(in.History, 20)
	avg := (short + mid) / 2

	switch {
	case short > 0.015 && mid > 0.01:
		return types.TradingSignal{
			Action:     types.ActionBuy,
			Confidence: clampConfidence(64 + avg*800),
			Strategy:   string(Swing),
			Rationale:  fmt.Sprintf("swing up confirmed on both windows (%.2f%%, %.2f%%)", short*100, mid*100),
			Score:      clamp01(0.55 + avg*10),
		}
	case short < -0.015 && mid < -0.01:
		return types.TradingSignal{
			Action:     types.ActionSell,
			Confidence: clampConfidence(64 - avg*800),
			Strategy:   string(Swing),
			Rationale:  fmt.Sprintf("swing down confirmed on both windows (%.2f%%, %.2f%%)", short*100, mid*100),
			Score:      clamp01(0.45 + avg*10),
		}
	}
	return hold(Swing, 40, "swing windows disagree")
}
