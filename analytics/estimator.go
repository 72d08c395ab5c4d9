package analytics

import (
	"math/rand"
	"time"
)

// Estimator supplies the ratios the simulator does not derive from the
// P&L series. The shipped implementation draws them from bounded random
// bands, reproducing the upstream behaviour; substitute a real
// computation here without touching the Ledger or the call sites.
type Estimator interface {
	MaxDrawdown() float64
	Sharpe() float64
	Sortino() float64
	Beta() float64
	Correlation() float64
	InformationRatio() float64
	TreynorRatio() float64
	JensenAlpha() float64
}

// RandomEstimator is the default: every metric is a uniform draw inside
// a plausible band. Known limitation, kept for fidelity with the system
// this simulates.
type RandomEstimator struct {
	rng *rand.Rand
}

// NewRandomEstimator seeds the estimator; pass a fixed seed for
// reproducible dashboards.
func NewRandomEstimator(seed int64) *RandomEstimator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomEstimator{rng: rand.New(rand.NewSource(seed))}
}

func (e *RandomEstimator) draw(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}

func (e *RandomEstimator) MaxDrawdown() float64      { return e.draw(2, 15) }
func (e *RandomEstimator) Sharpe() float64           { return e.draw(0.8, 2.4) }
func (e *RandomEstimator) Sortino() float64          { return e.draw(1.0, 3.0) }
func (e *RandomEstimator) Beta() float64             { return e.draw(0.6, 1.4) }
func (e *RandomEstimator) Correlation() float64      { return e.draw(0.3, 0.9) }
func (e *RandomEstimator) InformationRatio() float64 { return e.draw(0.2, 1.2) }
func (e *RandomEstimator) TreynorRatio() float64     { return e.draw(0.05, 0.25) }
func (e *RandomEstimator) JensenAlpha() float64      { return e.draw(-0.02, 0.08) }

// FixedEstimator returns the same numbers every call. Tests use it.
type FixedEstimator struct {
	Drawdown, SharpeV, SortinoV, BetaV, Corr, Info, Treynor, Jensen float64
}

func (f FixedEstimator) MaxDrawdown() float64      { return f.Drawdown }
func (f FixedEstimator) Sharpe() float64           { return f.SharpeV }
func (f FixedEstimator) Sortino() float64          { return f.SortinoV }
func (f FixedEstimator) Beta() float64             { return f.BetaV }
func (f FixedEstimator) Correlation() float64      { return f.Corr }
func (f FixedEstimator) InformationRatio() float64 { return f.Info }
func (f FixedEstimator) TreynorRatio() float64     { return f.Treynor }
func (f FixedEstimator) JensenAlpha() float64      { return f.Jensen }
