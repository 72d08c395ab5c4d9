package strategy

import (
	"fmt"
	"math"

	"github.com/evdnx/papertrader/types"
)

// ensemble blends five base evaluators with regime-dependent weights.
// An action is only taken when its weighted score strictly dominates the
// other two and clears 65% of the total weight.
type ensemble struct {
	members []Evaluator
}

func newEnsemble() *ensemble {
	return &ensemble{
		members: []Evaluator{
			&meanReversion{},
			&momentum{},
			&neural{},
			&scalping{},
			&swing{},
		},
	}
}

// memberWeights holds one weight per member in constructor order. Each
// preset sums to 1.
type memberWeights [5]float64

var regimeWeights = map[types.RegimeType]memberWeights{
	types.TrendingUp:     {0.10, 0.35, 0.20, 0.10, 0.25},
	types.TrendingDown:   {0.10, 0.35, 0.20, 0.10, 0.25},
	types.Sideways:       {0.40, 0.10, 0.20, 0.20, 0.10},
	types.HighVolatility: {0.25, 0.10, 0.20, 0.35, 0.10},
	types.Breakout:       {0.10, 0.40, 0.20, 0.20, 0.10},
}

var defaultWeights = memberWeights{0.20, 0.20, 0.20, 0.20, 0.20}

const dominanceFraction = 0.65

func (ensemble) Name() Name { return Ensemble }

func (e *ensemble) Evaluate(in Input) types.TradingSignal {
	weights, ok := regimeWeights[in.Regime.Type]
	if !ok {
		weights = defaultWeights
	}

	var buyScore, sellScore, holdScore, totalWeight float64
	for i, m := range e.members {
		sig := m.Evaluate(in)
		w := weights[i]
		totalWeight += w
		weighted := w * sig.Confidence / 100
		switch sig.Action {
		case types.ActionBuy:
			buyScore += weighted
		case types.ActionSell:
			sellScore += weighted
		default:
			holdScore += weighted
		}
	}

	action := types.ActionHold
	rationale := "no action dominates the member vote"
	threshold := dominanceFraction * totalWeight
	switch {
	case buyScore > sellScore && buyScore > holdScore && buyScore > threshold:
		action = types.ActionBuy
		rationale = fmt.Sprintf("buy vote dominates (%.2f of %.2f weight)", buyScore, totalWeight)
	case sellScore > buyScore && sellScore > holdScore && sellScore > threshold:
		action = types.ActionSell
		rationale = fmt.Sprintf("sell vote dominates (%.2f of %.2f weight)", sellScore, totalWeight)
	}

	confidence := (buyScore + sellScore + holdScore) / totalWeight * 100
	confidence = math.Max(55, math.Min(95, confidence))

	score := 0.5
	if totalWeight > 0 {
		score = clamp01(0.5 + (buyScore-sellScore)/totalWeight)
	}

	return types.TradingSignal{
		Action:     action,
		Confidence: confidence,
		Strategy:   string(Ensemble),
		Rationale:  rationale,
		Score:      score,
	}
}
