package strategy

import (
	"fmt"

	"github.com/evdnx/papertrader/indicator"
	"github.com/evdnx/papertrader/types"
)

// scalping hunts very short bursts: a three-sample momentum read, with
// the Bollinger band position grading how much room the move has left.
type scalping struct{}

const scalpingMinHistory = 12

func (scalping) Name() Name { return Scalping }

func (s *scalping) Evaluate(in Input) types.TradingSignal {
	if len(in.History) < scalpingMinHistory {
		return hold(Scalping, 34, "insufficient history for scalping")
	}

	burst := indicator.Momentum(in.History, 3)
	boll := indicator.BollingerPosition(in.History, 12, 1.5)

	switch {
	case burst > 0.006:
		conf := 58 + burst*1200
		if boll < 0.8 {
			conf += 8 // room before the band top
		}
		return types.TradingSignal{
			Action:     types.ActionBuy,
			Confidence: clampConfidence(conf),
			Strategy:   string(Scalping),
			Rationale:  fmt.Sprintf("short burst up %.2f%% (band position %.2f)", burst*100, boll),
			Score:      clamp01(0.55 + burst*20),
		}
	case burst < -0.006:
		conf := 58 - burst*1200
		if boll > 0.2 {
			conf += 8 // room before the band floor
		}
		return types.TradingSignal{
			Action:     types.ActionSell,
			Confidence: clampConfidence(conf),
			Strategy:   string(Scalping),
			Rationale:  fmt.Sprintf("short burst down %.2f%% (band position %.2f)", burst*100, boll),
			Score:      clamp01(0.45 + burst*20),
		}
	}
	return hold(Scalping, 38, "no scalpable burst")
}
