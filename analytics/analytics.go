// Package analytics derives point-in-time performance and risk numbers
// from ledger state. VaR and expected shortfall are computed from the
// realized P&L window; the remaining ratios come from an Estimator so
// the bounded-random placeholders the simulator ships with can be
// swapped for a real computation without touching any call site.
package analytics

import (
	"sort"
	"time"

	"github.com/evdnx/papertrader/paper"
	"github.com/evdnx/papertrader/types"
)

// minRiskSamples is the P&L history needed before VaR is meaningful.
const minRiskSamples = 15

// profitFactor fallback when no losing trade exists yet.
const noLossProfitFactor = 2.5

// RiskMetrics computes the tail statistics over the realized P&L
// window. ok is false with fewer than minRiskSamples samples.
func RiskMetrics(pnl []float64, est Estimator) (m types.RiskMetrics, ok bool) {
	if len(pnl) < minRiskSamples {
		return types.RiskMetrics{}, false
	}

	sorted := make([]float64, len(pnl))
	copy(sorted, pnl)
	sort.Float64s(sorted)

	// 5th percentile; for small samples this is simply the worst draw.
	idx := len(sorted) / 20
	m.VaR95 = sorted[idx]

	tail := len(sorted) / 20
	if tail < 1 {
		tail = 1
	}
	sum := 0.0
	for _, v := range sorted[:tail] {
		sum += v
	}
	m.ExpectedShortfall = sum / float64(tail)

	m.Beta = est.Beta()
	m.Correlation = est.Correlation()
	m.InformationRatio = est.InformationRatio()
	m.TreynorRatio = est.TreynorRatio()
	m.JensenAlpha = est.JensenAlpha()
	return m, true
}

// BotStats aggregates a ledger snapshot into the scoreboard the
// presentation layer renders. refPrices values the non-cash holdings.
func BotStats(s paper.Snapshot, refPrices map[string]float64, est Estimator) types.BotStats {
	equity := valueOf(s.Balances, refPrices)
	initial := valueOf(s.Initial, refPrices)

	stats := types.BotStats{
		Trades:      s.Trades,
		TotalProfit: equity - initial,
		Streak:      s.Streak,
		BestStreak:  s.BestStreak,
	}
	if initial > 0 {
		stats.ROI = stats.TotalProfit / initial * 100
	}

	// Win rate and profit factor use the ledger's lifetime aggregates,
	// not the bounded P&L window, so they stay exact past the window cap.
	if s.Trades > 0 {
		stats.WinRate = float64(s.Wins) / float64(s.Trades) * 100
	}
	if s.LossSum > 0 {
		stats.ProfitFactor = s.WinSum / s.LossSum
	} else if s.WinSum > 0 {
		stats.ProfitFactor = noLossProfitFactor
	}

	stats.MaxDrawdown = est.MaxDrawdown()
	stats.Sharpe = est.Sharpe()
	stats.Sortino = est.Sortino()
	if stats.MaxDrawdown > 0 {
		stats.Calmar = stats.ROI / stats.MaxDrawdown
	}
	stats.AvgHoldTime = avgGap(s.TradeTimes)
	return stats
}

func valueOf(balances, refPrices map[string]float64) float64 {
	total := 0.0
	for asset, qty := range balances {
		if price, ok := refPrices[asset]; ok {
			total += qty * price
		} else {
			total += qty // cash leg
		}
	}
	return total
}

func avgGap(times []time.Time) time.Duration {
	if len(times) < 2 {
		return 0
	}
	var sum time.Duration
	for i := 1; i < len(times); i++ {
		sum += times[i].Sub(times[i-1])
	}
	return sum / time.Duration(len(times)-1)
}
