package strategy

import (
	"fmt"

	"github.com/evdnx/papertrader/indicator"
	"github.com/evdnx/papertrader/types"
)

// meanReversion fades oversold/overbought extremes using RSI and the
// Bollinger band position.
type meanReversion struct{}

const meanReversionMinHistory = 40

func (meanReversion) Name() Name { return MeanReversion }

func (s *meanReversion) Evaluate(in Input) types.TradingSignal {
	if len(in.History) < meanReversionMinHistory {
		return hold(MeanReversion, 35, "insufficient history for mean reversion")
	}

	rsi := indicator.RSI(in.History, 14)
	boll := indicator.BollingerPosition(in.History, 20, 2)

	switch {
	case rsi < 25 && boll < 0.15:
		return types.TradingSignal{
			Action:     types.ActionBuy,
			Confidence: clampConfidence(82),
			Strategy:   string(MeanReversion),
			Rationale:  fmt.Sprintf("deeply oversold: RSI %.1f, band position %.2f", rsi, boll),
			Score:      0.9,
		}
	case rsi < 32 && boll < 0.25:
		return types.TradingSignal{
			Action:     types.ActionBuy,
			Confidence: clampConfidence(70),
			Strategy:   string(MeanReversion),
			Rationale:  fmt.Sprintf("oversold: RSI %.1f, band position %.2f", rsi, boll),
			Score:      0.75,
		}
	case rsi > 75 && boll > 0.85:
		return types.TradingSignal{
			Action:     types.ActionSell,
			Confidence: clampConfidence(82),
			Strategy:   string(MeanReversion),
			Rationale:  fmt.Sprintf("deeply overbought: RSI %.1f, band position %.2f", rsi, boll),
			Score:      0.1,
		}
	case rsi > 68 && boll > 0.75:
		return types.TradingSignal{
			Action:     types.ActionSell,
			Confidence: clampConfidence(70),
			Strategy:   string(MeanReversion),
			Rationale:  fmt.Sprintf("overbought: RSI %.1f, band position %.2f", rsi, boll),
			Score:      0.25,
		}
	}
	return hold(MeanReversion, 42,
		fmt.Sprintf("no reversion edge: RSI %.1f inside neutral band", rsi))
}
