package market

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"
)

var wednesdayNoon = time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)

func newTestGenerator(seed int64, at time.Time) *Generator {
	return NewGenerator(
		WithRand(rand.New(rand.NewSource(seed))),
		WithClock(func() time.Time { return at }),
		WithoutLatency(),
	)
}

func TestNextPrice_StaysInsideNoiseBand(t *testing.T) {
	g := newTestGenerator(1, wednesdayNoon)
	base := basePrices["BTC/GBP"]
	maxDev := priceNoise * 1.6 // widest session multiplier
	for i := 0; i < 500; i++ {
		p, err := g.NextPrice(context.Background(), "BTC/GBP")
		if err != nil {
			t.Fatalf("NextPrice failed: %v", err)
		}
		if dev := math.Abs(p-base) / base; dev > maxDev {
			t.Fatalf("tick %d deviates %.4f from base, max %.4f", i, dev, maxDev)
		}
	}
}

func TestNextPrice_AppendsToWindowFIFO(t *testing.T) {
	g := newTestGenerator(2, wednesdayNoon)
	var all []float64
	for i := 0; i < 300; i++ {
		p, err := g.NextPrice(context.Background(), "BTC/GBP")
		if err != nil {
			t.Fatalf("NextPrice failed: %v", err)
		}
		all = append(all, p)
	}
	hist := g.History("BTC/GBP")
	if len(hist) != windowCap {
		t.Fatalf("window length = %d, want %d", len(hist), windowCap)
	}
	// Oldest 50 ticks evicted; the window must equal the last 250.
	for i, p := range hist {
		if p != all[50+i] {
			t.Fatalf("window[%d] = %f, want %f", i, p, all[50+i])
		}
	}
}

func TestNextPrice_UnknownPair(t *testing.T) {
	g := newTestGenerator(3, wednesdayNoon)
	if _, err := g.NextPrice(context.Background(), "DOGE/GBP"); err == nil {
		t.Fatal("expected an error for an unknown pair")
	}
}

func TestOHLC_ShapeAndWindowUntouched(t *testing.T) {
	g := newTestGenerator(4, wednesdayNoon)
	if _, err := g.NextPrice(context.Background(), "ETH/GBP"); err != nil {
		t.Fatalf("NextPrice failed: %v", err)
	}
	before := g.History("ETH/GBP")

	bars, err := g.OHLC(context.Background(), "ETH/GBP")
	if err != nil {
		t.Fatalf("OHLC failed: %v", err)
	}
	if len(bars) != ohlcBars {
		t.Fatalf("bar count = %d, want %d", len(bars), ohlcBars)
	}
	for i := 1; i < len(bars); i++ {
		if got := bars[i].Timestamp.Sub(bars[i-1].Timestamp); got != ohlcSpacing {
			t.Fatalf("bar spacing at %d = %s, want %s", i, got, ohlcSpacing)
		}
	}
	if !bars[len(bars)-1].Timestamp.Equal(wednesdayNoon) {
		t.Fatalf("last bar at %s, want %s", bars[len(bars)-1].Timestamp, wednesdayNoon)
	}

	after := g.History("ETH/GBP")
	if len(after) != len(before) {
		t.Fatalf("OHLC mutated the window: %d -> %d samples", len(before), len(after))
	}
}

func TestNextPrice_Cancellation(t *testing.T) {
	// Real latency this time, so cancellation has something to interrupt.
	g := NewGenerator(WithClock(func() time.Time { return wednesdayNoon }))
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	if _, err := g.NextPrice(ctx, "BTC/GBP"); err == nil {
		t.Fatal("expected a context error on cancellation")
	}
	if got := g.History("BTC/GBP"); len(got) != 0 {
		t.Fatalf("cancelled fetch still appended %d samples", len(got))
	}
}

func TestHourMultiplier_Table(t *testing.T) {
	cases := []struct {
		hour int
		want float64
	}{
		{3, 1.15},  // Asian band
		{8, 1.6},   // European open
		{12, 0.7},  // off-peak gap between the active bands
		{15, 1.6},  // US overlap
		{22, 0.7},  // late off-peak
	}
	for _, c := range cases {
		at := time.Date(2025, 6, 11, c.hour, 30, 0, 0, time.UTC)
		if got := hourMultiplier(at); got != c.want {
			t.Fatalf("hour %d multiplier = %.2f, want %.2f", c.hour, got, c.want)
		}
	}
}

func TestSeed_FillsWindow(t *testing.T) {
	g := newTestGenerator(5, wednesdayNoon)
	g.Seed("BTC/GBP", 1, 2, 3)
	hist := g.History("BTC/GBP")
	if len(hist) != 3 || hist[0] != 1 || hist[2] != 3 {
		t.Fatalf("seeded window = %v", hist)
	}
}
