package strategy

import (
	"fmt"

	"github.com/evdnx/goti"
	"github.com/evdnx/papertrader/indicator"
	"github.com/evdnx/papertrader/types"
)

// neural scores the market with a linear blend of normalised features.
// Alongside the plain price features it replays the history through a
// goti indicator suite and folds the suite's crossover state into the
// blend. There is no training loop; the weights are hand-tuned.
type neural struct{}

const neuralMinHistory = 30

// Feature weights, in the order they are accumulated below. They sum
// to 1 so the blended score stays in [0,1].
var neuralWeights = [5]float64{0.25, 0.25, 0.2, 0.15, 0.15}

func (neural) Name() Name { return Neural }

func (s *neural) Evaluate(in Input) types.TradingSignal {
	if len(in.History) < neuralMinHistory {
		return hold(Neural, 38, "insufficient history for feature blend")
	}

	// Plain price features, each mapped into [0,1] with 0.5 neutral.
	rsiFeat := indicator.RSI(in.History, 14) / 100
	momFeat := clamp01(0.5 + indicator.Momentum(in.History, 10)*8)
	bollFeat := indicator.BollingerPosition(in.History, 20, 2)
	volFeat := clamp01(0.5 - indicator.Volatility(in.History)*4)

	score := neuralWeights[0]*(1-rsiFeat) + // contrarian RSI leg
		neuralWeights[1]*momFeat +
		neuralWeights[2]*(1-bollFeat) +
		neuralWeights[3]*volFeat +
		neuralWeights[4]*suiteFeature(in.History)

	switch {
	case score > 0.66:
		return types.TradingSignal{
			Action:     types.ActionBuy,
			Confidence: clampConfidence(55 + score*40),
			Strategy:   string(Neural),
			Rationale:  fmt.Sprintf("feature blend strongly bullish (score %.2f)", score),
			Score:      score,
		}
	case score > 0.58:
		return types.TradingSignal{
			Action:     types.ActionBuy,
			Confidence: clampConfidence(50 + score*30),
			Strategy:   string(Neural),
			Rationale:  fmt.Sprintf("feature blend bullish (score %.2f)", score),
			Score:      score,
		}
	case score < 0.34:
		return types.TradingSignal{
			Action:     types.ActionSell,
			Confidence: clampConfidence(55 + (1-score)*40),
			Strategy:   string(Neural),
			Rationale:  fmt.Sprintf("feature blend strongly bearish (score %.2f)", score),
			Score:      score,
		}
	case score < 0.42:
		return types.TradingSignal{
			Action:     types.ActionSell,
			Confidence: clampConfidence(50 + (1-score)*30),
			Strategy:   string(Neural),
			Rationale:  fmt.Sprintf("feature blend bearish (score %.2f)", score),
			Score:      score,
		}
	}
	return hold(Neural, 44, fmt.Sprintf("feature blend neutral (score %.2f)", score))
}

// suiteFeature replays the history through a goti suite and condenses
// its crossover state into a [0,1] feature. Suite errors degrade to the
// neutral 0.5 rather than failing the evaluation.
func suiteFeature(history []float64) float64 {
	suite, err := goti.NewIndicatorSuiteWithConfig(goti.DefaultConfig())
	if err != nil {
		return 0.5
	}
	for _, c := range history {
		// Synthesize a narrow bar around each close; the generator only
		// hands us ticks.
		if err := suite.Add(c*1.002, c*0.998, c, 1000); err != nil {
			return 0.5
		}
	}
	feat := 0.5
	if rsi, err := suite.GetRSI().Calculate(); err == nil {
		// Contrarian tilt: deep oversold pushes the feature up.
		feat += (50 - rsi) / 250
	}
	if ok, err := suite.GetHMA().IsBullishCrossover(); err == nil && ok {
		feat += 0.15
	}
	if ok, err := suite.GetHMA().IsBearishCrossover(); err == nil && ok {
		feat -= 0.15
	}
	return clamp01(feat)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
