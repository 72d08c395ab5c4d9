// Package market implements the synthetic price feed the paper exchange
// trades against. Prices random-walk around a per-pair base scaled by an
// hour-of-day volatility curve; each fetch also models the latency a real
// provider would incur, as a cancellable suspension.
package market

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/evdnx/papertrader/types"
)

const (
	windowCap   = 250
	priceNoise  = 0.035 // ±3.5% per tick before the session multiplier
	ohlcNoise   = 0.12  // ±12% per synthesized bar
	ohlcBars    = 121
	ohlcSpacing = 600 * time.Second

	priceLatency = 100 * time.Millisecond
	ohlcLatency  = 200 * time.Millisecond
)

// basePrices anchors the random walk per supported pair.
var basePrices = map[string]float64{
	"BTC/GBP": 31500,
	"ETH/GBP": 1850,
}

// volatilityBand maps an inclusive UTC hour range to a session
// multiplier. Declared as a table so the boundaries are testable without
// touching the wall clock.
type volatilityBand struct {
	fromHour, toHour int
	multiplier       float64
}

// The two active bands (European and US opens) run hot, the Asian band
// moderate, everything else quiet.
var volatilityBands = []volatilityBand{
	{7, 10, 1.6},
	{13, 17, 1.6},
	{0, 5, 1.15},
}

const offPeakMultiplier = 0.7

func hourMultiplier(t time.Time) float64 {
	h := t.UTC().Hour()
	for _, b := range volatilityBands {
		if h >= b.fromHour && h <= b.toHour {
			return b.multiplier
		}
	}
	return offPeakMultiplier
}

// Generator produces synthetic ticks and OHLC bars and owns the rolling
// price window per pair.
type Generator struct {
	mu      sync.Mutex
	windows map[string]*priceWindow
	rng     *rand.Rand
	now     func() time.Time
	// latency simulates provider round-trips; tests replace it with a
	// no-op.
	latency func(ctx context.Context, d time.Duration) error
}

// Option tweaks a Generator at construction time.
type Option func(*Generator)

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithRand injects the noise source so tests are deterministic.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// WithoutLatency removes the simulated provider delay.
func WithoutLatency() Option {
	return func(g *Generator) {
		g.latency = func(context.Context, time.Duration) error { return nil }
	}
}

// NewGenerator builds a generator seeded from the clock.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		windows: make(map[string]*priceWindow),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
		latency: sleep,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Supported reports whether the generator knows the pair.
func Supported(pair string) bool {
	_, ok := basePrices[pair]
	return ok
}

// NextPrice returns a fresh tick for pair and appends it to the pair's
// rolling window. The noise amplitude follows the session's volatility
// band.
func (g *Generator) NextPrice(ctx context.Context, pair string) (float64, error) {
	base, ok := basePrices[pair]
	if !ok {
		return 0, fmt.Errorf("market: unknown pair %q", pair)
	}
	if err := g.latency(ctx, priceLatency); err != nil {
		return 0, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	mult := hourMultiplier(g.now())
	noise := (g.rng.Float64()*2 - 1) * priceNoise * mult
	price := base * (1 + noise)

	w, ok := g.windows[pair]
	if !ok {
		w = newPriceWindow(windowCap)
		g.windows[pair] = w
	}
	w.Add(price)
	return price, nil
}

// OHLC synthesizes ohlcBars bars spaced ohlcSpacing apart ending now.
// The rolling window is untouched.
func (g *Generator) OHLC(ctx context.Context, pair string) ([]types.Bar, error) {
	base, ok := basePrices[pair]
	if !ok {
		return nil, fmt.Errorf("market: unknown pair %q", pair)
	}
	if err := g.latency(ctx, ohlcLatency); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	current := base
	if w, ok := g.windows[pair]; ok && w.Len() > 0 {
		current = w.Last()
	}
	end := g.now()
	bars := make([]types.Bar, ohlcBars)
	for i := 0; i < ohlcBars; i++ {
		noise := (g.rng.Float64()*2 - 1) * ohlcNoise
		bars[i] = types.Bar{
			Timestamp: end.Add(-time.Duration(ohlcBars-1-i) * ohlcSpacing),
			Price:     current * (1 + noise),
		}
	}
	return bars, nil
}

// History returns a snapshot of the pair's rolling price window, oldest
// first.
func (g *Generator) History(pair string) []float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	w, ok := g.windows[pair]
	if !ok {
		return nil
	}
	return w.Values()
}

// Seed pushes prices straight into the rolling window without latency or
// noise. The simulation warm-up and the tests use it.
func (g *Generator) Seed(pair string, prices ...float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	w, ok := g.windows[pair]
	if !ok {
		w = newPriceWindow(windowCap)
		g.windows[pair] = w
	}
	for _, p := range prices {
		w.Add(p)
	}
}
