package indicator

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestSMA(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}
	if got := SMA(prices, 3); !almostEqual(got, 4, 1e-9) {
		t.Fatalf("SMA(3) = %f, want 4", got)
	}
	if got := SMA(prices, 10); got != 0 {
		t.Fatalf("SMA on short series = %f, want 0", got)
	}
}

func TestEMA_ConvergesToConstant(t *testing.T) {
	prices := make([]float64, 50)
	for i := range prices {
		prices[i] = 42
	}
	if got := EMA(prices, 12); !almostEqual(got, 42, 1e-9) {
		t.Fatalf("EMA of constant series = %f, want 42", got)
	}
}

func TestRSI_Extremes(t *testing.T) {
	up := make([]float64, 20)
	down := make([]float64, 20)
	flat := make([]float64, 20)
	for i := range up {
		up[i] = 100 + float64(i)
		down[i] = 100 - float64(i)
		flat[i] = 100
	}
	if got := RSI(up, 14); got != 100 {
		t.Fatalf("RSI of pure gains = %f, want 100", got)
	}
	if got := RSI(down, 14); got != 0 {
		t.Fatalf("RSI of pure losses = %f, want 0", got)
	}
	if got := RSI(flat, 14); got != 50 {
		t.Fatalf("RSI of flat series = %f, want 50", got)
	}
	if got := RSI(flat[:5], 14); got != 50 {
		t.Fatalf("RSI on short series = %f, want neutral 50", got)
	}
}

func TestMACD_SignOfTrend(t *testing.T) {
	up := make([]float64, 60)
	for i := range up {
		up[i] = 100 * math.Pow(1.01, float64(i))
	}
	macd, _, _ := MACD(up)
	if macd <= 0 {
		t.Fatalf("MACD of uptrend = %f, want positive", macd)
	}
	if m, s, h := MACD(up[:10]); m != 0 || s != 0 || h != 0 {
		t.Fatalf("MACD on short series = (%f,%f,%f), want zeros", m, s, h)
	}
}

func TestMACD_SignalAveragesNineSamples(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 100 * math.Pow(1.004, float64(i))
	}

	// The signal line is the mean of the MACD values of the nine most
	// recent prefixes, the full series included.
	want := 0.0
	for i := len(prices) - 8; i <= len(prices); i++ {
		want += EMA(prices[:i], 12) - EMA(prices[:i], 26)
	}
	want /= 9

	_, signal, _ := MACD(prices)
	if math.Abs(signal-want) > 1e-9 {
		t.Fatalf("signal = %f, want %f", signal, want)
	}
}

func TestBollingerPosition_Bounds(t *testing.T) {
	down := make([]float64, 30)
	for i := range down {
		down[i] = 100 - float64(i)
	}
	pos := BollingerPosition(down, 20, 2)
	if pos < 0 || pos > 0.2 {
		t.Fatalf("band position of a falling series = %f, want near 0", pos)
	}
	flat := make([]float64, 30)
	for i := range flat {
		flat[i] = 100
	}
	if got := BollingerPosition(flat, 20, 2); got != 0.5 {
		t.Fatalf("band position of zero-width band = %f, want 0.5", got)
	}
}

func TestVolatility(t *testing.T) {
	flat := []float64{100, 100, 100, 100}
	if got := Volatility(flat); got != 0 {
		t.Fatalf("volatility of flat series = %f, want 0", got)
	}
	choppy := []float64{100, 120, 100, 120, 100, 120}
	if got := Volatility(choppy); got < 0.15 {
		t.Fatalf("volatility of choppy series = %f, want > 0.15", got)
	}
}

func TestMomentum(t *testing.T) {
	prices := []float64{100, 100, 100, 110, 110, 110}
	if got := Momentum(prices, 3); !almostEqual(got, 0.1, 1e-9) {
		t.Fatalf("momentum = %f, want 0.1", got)
	}
	if got := Momentum(prices, 5); got != 0 {
		t.Fatalf("momentum on short series = %f, want 0", got)
	}
}
