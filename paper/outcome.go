package paper

import "math/rand"

// OutcomeModel draws the realized edge of a trade from its notional.
// The default is deliberately optimistic: this is a paper simulator, not
// a market model.
type OutcomeModel interface {
	Realized(notional float64) float64
}

// Branch probabilities and ranges of the default model: 72% chance of a
// profit in [1.5%,18%] of notional, 16% near break-even in [-2.5%,3%],
// 12% a loss in [-12%,-1%].
const (
	winProbability  = 0.72
	flatProbability = 0.16

	winLow, winHigh   = 0.015, 0.18
	flatLow, flatHigh = -0.025, 0.03
	lossLow, lossHigh = -0.12, -0.01
)

type randomOutcome struct {
	rng *rand.Rand
}

// NewRandomOutcome builds the default three-branch probabilistic model.
func NewRandomOutcome(seed int64) OutcomeModel {
	return &randomOutcome{rng: rand.New(rand.NewSource(seed))}
}

func (o *randomOutcome) Realized(notional float64) float64 {
	roll := o.rng.Float64()
	var lo, hi float64
	switch {
	case roll < winProbability:
		lo, hi = winLow, winHigh
	case roll < winProbability+flatProbability:
		lo, hi = flatLow, flatHigh
	default:
		lo, hi = lossLow, lossHigh
	}
	return notional * (lo + o.rng.Float64()*(hi-lo))
}

// FixedOutcome always returns the same fraction of notional. Tests use
// it to pin the ledger's arithmetic.
type FixedOutcome struct {
	Fraction float64
}

func (f FixedOutcome) Realized(notional float64) float64 {
	return notional * f.Fraction
}
