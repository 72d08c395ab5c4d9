// Package indicator provides stateless technical indicators computed over
// a plain slice of closing prices, oldest first. Every function returns a
// neutral value when the slice is too short rather than erroring; the
// caller decides whether the history is long enough to act on.
package indicator

import "math"

// SMA returns the simple moving average of the last period prices.
func SMA(prices []float64, period int) float64 {
	if period <= 0 || len(prices) < period {
		return 0
	}
	sum := 0.0
	for _, p := range prices[len(prices)-period:] {
		sum += p
	}
	return sum / float64(period)
}

// EMA returns the exponential moving average of the last period prices,
// seeded with the SMA of the first period samples.
func EMA(prices []float64, period int) float64 {
	if period <= 0 || len(prices) < period {
		return 0
	}
	k := 2.0 / float64(period+1)
	ema := SMA(prices[:period], period)
	for _, p := range prices[period:] {
		ema = p*k + ema*(1-k)
	}
	return ema
}

// RSI returns the Wilder relative strength index over period. A flat
// series yields 50.
func RSI(prices []float64, period int) float64 {
	if period <= 0 || len(prices) < period+1 {
		return 50
	}
	gains, losses := 0.0, 0.0
	start := len(prices) - period
	for i := start; i < len(prices); i++ {
		diff := prices[i] - prices[i-1]
		if diff > 0 {
			gains += diff
		} else {
			losses -= diff
		}
	}
	if losses == 0 {
		if gains == 0 {
			return 50
		}
		return 100
	}
	rs := gains / losses
	return 100 - 100/(1+rs)
}

// MACD returns the MACD line (EMA12-EMA26), its EMA9 signal line and the
// histogram.
func MACD(prices []float64) (macd, signal, histogram float64) {
	if len(prices) < 26 {
		return 0, 0, 0
	}
	macd = EMA(prices, 12) - EMA(prices, 26)
	// Approximate the signal line as the mean of the MACD series over
	// the last 9 samples, the current one included.
	series := make([]float64, 0, 9)
	for i := len(prices) - 8; i <= len(prices); i++ {
		if i < 26 {
			continue
		}
		series = append(series, EMA(prices[:i], 12)-EMA(prices[:i], 26))
	}
	if len(series) > 0 {
		sum := 0.0
		for _, v := range series {
			sum += v
		}
		signal = sum / float64(len(series))
	}
	return macd, signal, macd - signal
}

// BollingerPosition returns where the last price sits inside the
// period-sample Bollinger band: 0 = lower band, 1 = upper band, 0.5 when
// the band has no width.
func BollingerPosition(prices []float64, period int, width float64) float64 {
	if period <= 0 || len(prices) < period {
		return 0.5
	}
	mid := SMA(prices, period)
	sd := stdev(prices[len(prices)-period:], mid)
	upper := mid + width*sd
	lower := mid - width*sd
	if upper == lower {
		return 0.5
	}
	pos := (prices[len(prices)-1] - lower) / (upper - lower)
	return math.Max(0, math.Min(1, pos))
}

// Volatility returns the standard deviation of consecutive returns over
// the whole slice.
func Volatility(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			continue
		}
		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}
	if len(returns) == 0 {
		return 0
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))
	return stdev(returns, mean)
}

// Momentum returns the relative change between the averages of the last
// window prices and the window before it.
func Momentum(prices []float64, window int) float64 {
	if window <= 0 || len(prices) < 2*window {
		return 0
	}
	recent := SMA(prices, window)
	prior := SMA(prices[:len(prices)-window], window)
	if prior == 0 {
		return 0
	}
	return (recent - prior) / prior
}

func stdev(vals []float64, mean float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	variance := 0.0
	for _, v := range vals {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(vals))
	return math.Sqrt(variance)
}
