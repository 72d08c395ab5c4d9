// Package strategy contains the eight signal evaluators. Every evaluator
// is a pure function of the input it is handed: price history, the
// current tick, the classified regime and the clock. Evaluators only fill
// the action/confidence/rationale/score fields of a signal; the
// post-processor owns risk, expected return and the exit prices.
package strategy

import (
	"fmt"
	"math"
	"time"

	"github.com/evdnx/papertrader/types"
)

// Name enumerates the available strategies. The set is closed: New is an
// exhaustive switch, so adding a strategy without wiring it fails loudly.
type Name string

const (
	MeanReversion  Name = "mean_reversion"
	Momentum       Name = "momentum"
	Neural         Name = "neural"
	Arbitrage      Name = "arbitrage"
	Scalping       Name = "scalping"
	Swing          Name = "swing"
	MultiTimeframe Name = "multi_timeframe"
	Ensemble       Name = "ensemble"
)

// All lists every strategy name in a stable order.
func All() []Name {
	return []Name{
		MeanReversion, Momentum, Neural, Arbitrage,
		Scalping, Swing, MultiTimeframe, Ensemble,
	}
}

// Input carries everything an evaluator may read. History is oldest
// first and is never mutated by an evaluator.
type Input struct {
	Pair    string
	Price   float64
	History []float64
	Regime  types.MarketRegime
	Now     time.Time
}

// Evaluator turns an Input into a base trading signal.
type Evaluator interface {
	Name() Name
	Evaluate(in Input) types.TradingSignal
}

// New constructs the evaluator for name. seed feeds the evaluators that
// draw randomness (arbitrage spread sampling, nothing else).
func New(name Name, seed int64) (Evaluator, error) {
	switch name {
	case MeanReversion:
		return &meanReversion{}, nil
	case Momentum:
		return &momentum{}, nil
	case Neural:
		return &neural{}, nil
	case Arbitrage:
		return newArbitrage(seed), nil
	case Scalping:
		return &scalping{}, nil
	case Swing:
		return &swing{}, nil
	case MultiTimeframe:
		return &multiTimeframe{}, nil
	case Ensemble:
		return newEnsemble(), nil
	default:
		return nil, fmt.Errorf("strategy: unknown name %q", name)
	}
}

// hold builds the conservative fallback returned when an evaluator lacks
// history or conviction.
func hold(name Name, confidence float64, rationale string) types.TradingSignal {
	return types.TradingSignal{
		Action:     types.ActionHold,
		Confidence: confidence,
		Strategy:   string(name),
		Rationale:  rationale,
		Score:      0.5,
	}
}

// clampConfidence keeps base confidences inside the band the
// post-processor also enforces.
func clampConfidence(c float64) float64 {
	return math.Max(30, math.Min(95, c))
}
