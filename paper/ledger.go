// Package paper implements the simulated exchange ledger: balances,
// trade history, daily counters and streaks. Every order applies as one
// atomic unit under a single mutex; a failed order leaves the ledger
// byte-for-byte unchanged.
package paper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/evdnx/papertrader/exchange"
	"github.com/evdnx/papertrader/logger"
	"github.com/evdnx/papertrader/metrics"
	"github.com/evdnx/papertrader/types"
)

const (
	pnlWindowCap    = 150
	historyExported = 75

	cashAsset = "GBP"
)

// pairAssets maps the supported pairs to their asset leg.
var pairAssets = map[string]string{
	"BTC/GBP": "BTC",
	"ETH/GBP": "ETH",
}

// MarketSource is the slice of the generator the ledger needs: an
// execution price per order.
type MarketSource interface {
	NextPrice(ctx context.Context, pair string) (float64, error)
	OHLC(ctx context.Context, pair string) ([]types.Bar, error)
}

// Ledger is the paper exchange. It exclusively owns balances, trade
// history and the streak counters; nothing else mutates them.
type Ledger struct {
	mu sync.Mutex

	log     logger.Logger
	market  MarketSource
	outcome OutcomeModel
	now     func() time.Time

	balances map[string]float64
	initial  map[string]float64

	trades     []types.TradeRecord
	tradeTimes []time.Time
	pnl        []float64

	dailyTrades int
	dailyPnL    float64
	lastReset   time.Time // UTC midnight of the day the counters belong to

	// Lifetime aggregates; unlike the pnl window these never trim, so
	// win rate and profit factor stay exact past the window cap.
	wins    int
	winSum  float64
	lossSum float64

	streak     int // signed: positive = consecutive wins
	bestStreak int
}

// LedgerOption tweaks a Ledger at construction time.
type LedgerOption func(*Ledger)

// WithClock injects the time source used for timestamps and the daily
// reset.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) { l.now = now }
}

// WithOutcomeModel replaces the probabilistic P&L model.
func WithOutcomeModel(m OutcomeModel) LedgerOption {
	return func(l *Ledger) { l.outcome = m }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log logger.Logger) LedgerOption {
	return func(l *Ledger) { l.log = log }
}

// NewLedger opens a ledger with the given starting balances.
func NewLedger(market MarketSource, balances map[string]float64, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		log:      logger.NewNop(),
		market:   market,
		outcome:  NewRandomOutcome(time.Now().UnixNano()),
		now:      time.Now,
		balances: make(map[string]float64, len(balances)),
		initial:  make(map[string]float64, len(balances)),
	}
	for k, v := range balances {
		l.balances[k] = v
		l.initial[k] = v
	}
	for _, o := range opts {
		o(l)
	}
	l.lastReset = utcMidnight(l.now())
	return l
}

// Balances returns a snapshot of the current holdings.
func (l *Ledger) Balances() map[string]float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]float64, len(l.balances))
	for k, v := range l.balances {
		out[k] = v
	}
	return out
}

// InitialBalances returns the holdings the ledger opened with.
func (l *Ledger) InitialBalances() map[string]float64 {
	out := make(map[string]float64, len(l.initial))
	for k, v := range l.initial {
		out[k] = v
	}
	return out
}

// Price resolves a fresh tick through the market source.
func (l *Ledger) Price(ctx context.Context, pair string) (float64, error) {
	if _, ok := pairAssets[pair]; !ok {
		return 0, fmt.Errorf("%w: %s", exchange.ErrUnsupportedPair, pair)
	}
	return l.market.NextPrice(ctx, pair)
}

// OHLC delegates to the market source.
func (l *Ledger) OHLC(ctx context.Context, pair string) ([]types.Bar, error) {
	if _, ok := pairAssets[pair]; !ok {
		return nil, fmt.Errorf("%w: %s", exchange.ErrUnsupportedPair, pair)
	}
	return l.market.OHLC(ctx, pair)
}

// Buy executes a market buy of qty units of the pair's asset leg.
func (l *Ledger) Buy(ctx context.Context, pair string, qty float64) (string, error) {
	return l.execute(ctx, types.Buy, pair, qty)
}

// Sell executes a market sell of qty units of the pair's asset leg.
func (l *Ledger) Sell(ctx context.Context, pair string, qty float64) (string, error) {
	return l.execute(ctx, types.Sell, pair, qty)
}

// execute resolves the price first (the cancellable part), then applies
// the order under the mutex so a concurrent reader never sees a
// half-applied trade.
func (l *Ledger) execute(ctx context.Context, side types.Side, pair string, qty float64) (string, error) {
	asset, ok := pairAssets[pair]
	if !ok {
		metrics.OrdersRejected.WithLabelValues("unsupported_pair").Inc()
		return "", fmt.Errorf("%w: %s", exchange.ErrUnsupportedPair, pair)
	}
	if qty <= 0 {
		metrics.OrdersRejected.WithLabelValues("bad_quantity").Inc()
		return "", fmt.Errorf("quantity must be positive, got %f", qty)
	}

	price, err := l.market.NextPrice(ctx, pair)
	if err != nil {
		return "", err
	}
	notional := qty * price

	l.mu.Lock()
	defer l.mu.Unlock()

	l.resetDailyCounters()

	if side == types.Buy && l.balances[cashAsset] < notional {
		metrics.OrdersRejected.WithLabelValues("insufficient_funds").Inc()
		return "", fmt.Errorf("%w: need £%.2f, have £%.2f",
			exchange.ErrInsufficientFunds, notional, l.balances[cashAsset])
	}
	if side == types.Sell && l.balances[asset] < qty {
		metrics.OrdersRejected.WithLabelValues("insufficient_funds").Inc()
		return "", fmt.Errorf("%w: need %f %s, have %f",
			exchange.ErrInsufficientFunds, qty, asset, l.balances[asset])
	}

	if side == types.Buy {
		l.balances[cashAsset] -= notional
		l.balances[asset] += qty
	} else {
		l.balances[asset] -= qty
		l.balances[cashAsset] += notional
	}

	now := l.now()
	l.dailyTrades++
	l.tradeTimes = append(l.tradeTimes, now)

	// The realized edge is a simulation artifact layered on top of the
	// executed price; it never changes quantity or price.
	profit := l.outcome.Realized(notional)
	l.pnl = append(l.pnl, profit)
	if len(l.pnl) > pnlWindowCap {
		l.pnl = l.pnl[len(l.pnl)-pnlWindowCap:]
	}
	l.dailyPnL += profit
	if profit > 0 {
		l.wins++
		l.winSum += profit
	} else {
		l.lossSum -= profit
	}
	l.updateStreak(profit)

	l.trades = append(l.trades, types.TradeRecord{
		Side:      side,
		Asset:     asset,
		Quantity:  qty,
		Price:     price,
		Timestamp: now,
		Profit:    profit,
	})

	metrics.OrdersExecuted.WithLabelValues(string(side)).Inc()
	metrics.RealizedPnL.Add(profit)
	l.log.Info("order_executed",
		logger.String("side", string(side)),
		logger.String("pair", pair),
		logger.Float64("qty", qty),
		logger.Float64("price", price),
		logger.Float64("profit", profit),
	)

	returnPct := 0.0
	if notional > 0 {
		returnPct = profit / notional * 100
	}
	return fmt.Sprintf("%s %.6f %s @ £%.2f | edge £%.2f (%+.2f%%)",
		side, qty, asset, price, profit, returnPct), nil
}

// updateStreak extends a same-sign streak or starts a fresh one of
// length 1 on a sign flip. Break-even trades count as losses.
func (l *Ledger) updateStreak(profit float64) {
	if profit > 0 {
		if l.streak > 0 {
			l.streak++
		} else {
			l.streak = 1
		}
		if l.streak > l.bestStreak {
			l.bestStreak = l.streak
		}
		return
	}
	if l.streak < 0 {
		l.streak--
	} else {
		l.streak = -1
	}
}

// resetDailyCounters zeroes the daily trade count and P&L when the UTC
// calendar day has changed since the last order. Idempotent within a
// day. Callers hold the mutex.
func (l *Ledger) resetDailyCounters() {
	today := utcMidnight(l.now())
	if today.Equal(l.lastReset) {
		return
	}
	l.dailyTrades = 0
	l.dailyPnL = 0
	l.lastReset = today
}

func utcMidnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// TradeHistory returns the most recent trades, newest last, capped at
// historyExported regardless of limit. limit <= 0 means "the cap".
func (l *Ledger) TradeHistory(limit int) []types.TradeRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	if limit <= 0 || limit > historyExported {
		limit = historyExported
	}
	if limit > len(l.trades) {
		limit = len(l.trades)
	}
	out := make([]types.TradeRecord, limit)
	copy(out, l.trades[len(l.trades)-limit:])
	return out
}

// PnLHistory returns a snapshot of the bounded realized P&L window.
func (l *Ledger) PnLHistory() []float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]float64, len(l.pnl))
	copy(out, l.pnl)
	return out
}

// Snapshot bundles the counters analytics needs in one consistent read.
type Snapshot struct {
	Balances    map[string]float64
	Initial     map[string]float64
	PnL         []float64
	Trades      int
	Wins        int
	WinSum      float64
	LossSum     float64
	TradeTimes  []time.Time
	DailyTrades int
	DailyPnL    float64
	Streak      int
	BestStreak  int
}

// Stats returns a consistent snapshot of everything the analytics layer
// derives from.
func (l *Ledger) Stats() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resetDailyCounters()
	s := Snapshot{
		Balances:    make(map[string]float64, len(l.balances)),
		Initial:     make(map[string]float64, len(l.initial)),
		PnL:         make([]float64, len(l.pnl)),
		Trades:      len(l.trades),
		Wins:        l.wins,
		WinSum:      l.winSum,
		LossSum:     l.lossSum,
		TradeTimes:  make([]time.Time, len(l.tradeTimes)),
		DailyTrades: l.dailyTrades,
		DailyPnL:    l.dailyPnL,
		Streak:      l.streak,
		BestStreak:  l.bestStreak,
	}
	for k, v := range l.balances {
		s.Balances[k] = v
	}
	for k, v := range l.initial {
		s.Initial[k] = v
	}
	copy(s.PnL, l.pnl)
	copy(s.TradeTimes, l.tradeTimes)
	return s
}

// DailyTrades returns today's executed order count. Reading rolls the
// counters over at UTC midnight, so a cap hit yesterday never blocks
// today's first order.
func (l *Ledger) DailyTrades() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resetDailyCounters()
	return l.dailyTrades
}

// DailyPnL returns today's realized P&L. Reading rolls the counters
// over at UTC midnight.
func (l *Ledger) DailyPnL() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resetDailyCounters()
	return l.dailyPnL
}

var _ exchange.Exchange = (*Ledger)(nil)
