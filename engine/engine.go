// Package engine wires the full decision cycle: generator, classifier,
// strategy library, post-processor, sizing model and ledger. The
// presentation layer drives it on a timer and only ever calls these
// operations; it never touches core state directly.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/evdnx/papertrader/analytics"
	"github.com/evdnx/papertrader/config"
	"github.com/evdnx/papertrader/logger"
	"github.com/evdnx/papertrader/market"
	"github.com/evdnx/papertrader/metrics"
	"github.com/evdnx/papertrader/paper"
	"github.com/evdnx/papertrader/regime"
	"github.com/evdnx/papertrader/risk"
	"github.com/evdnx/papertrader/session"
	"github.com/evdnx/papertrader/signal"
	"github.com/evdnx/papertrader/strategy"
	"github.com/evdnx/papertrader/types"
)

// referencePrices values non-cash holdings for the equity readout.
var referencePrices = map[string]float64{
	"BTC": 31500,
	"ETH": 1850,
}

// Engine is the single logical actor of the simulation.
type Engine struct {
	log    logger.Logger
	cfg    config.TradingConfig
	gen    *market.Generator
	ledger *paper.Ledger
	proc   *signal.Processor
	est    analytics.Estimator
	now    func() time.Time

	evaluators map[strategy.Name]strategy.Evaluator
}

// Option tweaks an Engine at construction time.
type Option func(*Engine)

// WithLogger attaches a logger.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithClock injects the time source handed to evaluators and the
// session advisor.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithEstimator replaces the bounded-random metrics estimator.
func WithEstimator(est analytics.Estimator) Option {
	return func(e *Engine) { e.est = est }
}

// WithProcessor replaces the signal post-processor.
func WithProcessor(p *signal.Processor) Option {
	return func(e *Engine) { e.proc = p }
}

// New assembles an engine over the supplied generator and ledger.
func New(cfg config.TradingConfig, gen *market.Generator, ledger *paper.Ledger, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		log:        logger.NewNop(),
		cfg:        cfg,
		gen:        gen,
		ledger:     ledger,
		proc:       signal.NewProcessor(),
		est:        analytics.NewRandomEstimator(0),
		now:        time.Now,
		evaluators: make(map[strategy.Name]strategy.Evaluator),
	}
	for _, o := range opts {
		o(e)
	}
	seed := e.now().UnixNano()
	for _, name := range strategy.All() {
		ev, err := strategy.New(name, seed)
		if err != nil {
			return nil, err
		}
		e.evaluators[name] = ev
	}
	return e, nil
}

// GenerateSignal runs one full evaluation for the named strategy:
// fresh tick, regime classification, base evaluation, post-processing.
func (e *Engine) GenerateSignal(ctx context.Context, name strategy.Name, pair string) (types.TradingSignal, error) {
	ev, ok := e.evaluators[name]
	if !ok {
		return types.TradingSignal{}, fmt.Errorf("engine: unknown strategy %q", name)
	}

	price, err := e.gen.NextPrice(ctx, pair)
	if err != nil {
		return types.TradingSignal{}, err
	}
	history := e.gen.History(pair)
	reg := regime.Classify(history)

	base := ev.Evaluate(strategy.Input{
		Pair:    pair,
		Price:   price,
		History: history,
		Regime:  reg,
		Now:     e.now(),
	})
	out := e.proc.Process(base, reg, reg.Volatility, price, e.cfg)

	metrics.SignalsGenerated.WithLabelValues(string(name), string(out.Action)).Inc()
	e.log.Info("signal_generated",
		logger.String("strategy", string(name)),
		logger.String("pair", pair),
		logger.String("action", string(out.Action)),
		logger.Float64("confidence", out.Confidence),
		logger.String("regime", string(out.Regime)),
	)
	return out, nil
}

// CycleResult reports what one driver tick did.
type CycleResult struct {
	Signal       types.TradingSignal
	Executed     bool
	Confirmation string
	SkipReason   string
}

// Cycle runs one complete decision round for the pair and, when the
// signal clears every gate, places the order.
func (e *Engine) Cycle(ctx context.Context, name strategy.Name, pair string) (CycleResult, error) {
	sig, err := e.GenerateSignal(ctx, name, pair)
	if err != nil {
		return CycleResult{}, err
	}
	res := CycleResult{Signal: sig}

	if reason, ok := e.tradeGate(sig); !ok {
		res.SkipReason = reason
		return res, nil
	}

	balances := e.ledger.Balances()
	cash := balances["GBP"]
	history := e.gen.History(pair)
	vol := regime.Classify(history).Volatility

	amount := risk.Size(e.cfg.BaseFraction*e.cfg.MaxAllocation, vol,
		sig.Confidence, e.cfg.MaxAllocation, e.cfg, cash)

	// Size against the tick GenerateSignal just appended; the ledger
	// resolves its own execution price.
	price := history[len(history)-1]
	qty := amount / price

	var confirmation string
	switch sig.Action {
	case types.ActionBuy:
		confirmation, err = e.ledger.Buy(ctx, pair, qty)
	case types.ActionSell:
		confirmation, err = e.ledger.Sell(ctx, pair, qty)
	}
	if err != nil {
		res.SkipReason = err.Error()
		e.log.Warn("order_skipped",
			logger.String("pair", pair),
			logger.Err(err),
		)
		return res, nil
	}

	metrics.EquityGauge.Set(e.equity())
	res.Executed = true
	res.Confirmation = confirmation
	return res, nil
}

// tradeGate applies the config filters and daily caps.
func (e *Engine) tradeGate(sig types.TradingSignal) (reason string, ok bool) {
	if sig.Action == types.ActionHold {
		return "hold signal", false
	}
	if sig.Confidence < e.cfg.ConfidenceThreshold {
		return fmt.Sprintf("confidence %.1f below threshold %.1f",
			sig.Confidence, e.cfg.ConfidenceThreshold), false
	}
	if e.cfg.VolatilityFilter && sig.Risk == types.RiskExtreme {
		return "extreme risk filtered", false
	}
	if e.cfg.TrendFilter && sig.Regime == types.HighVolatility && sig.Action == types.ActionBuy {
		return "buys suppressed in high-volatility regime", false
	}
	if float64(e.ledger.DailyTrades()) >= e.cfg.MaxDailyTrades {
		return "daily trade cap reached", false
	}
	daily := e.ledger.DailyPnL()
	if daily <= -e.cfg.MaxDailyLoss {
		return "daily loss cap reached", false
	}
	if daily >= e.cfg.MaxDailyGain {
		return "daily gain cap reached", false
	}
	if !session.Advise(e.now()).Open {
		return "market closed", false
	}
	return "", true
}

// MarketRegime classifies the pair's current rolling window.
func (e *Engine) MarketRegime(pair string) types.MarketRegime {
	return regime.Classify(e.gen.History(pair))
}

// RiskMetrics derives tail statistics from the realized P&L window.
// ok is false until enough trades have completed.
func (e *Engine) RiskMetrics() (types.RiskMetrics, bool) {
	return analytics.RiskMetrics(e.ledger.PnLHistory(), e.est)
}

// BotStats aggregates the ledger into the scoreboard snapshot.
func (e *Engine) BotStats() types.BotStats {
	return analytics.BotStats(e.ledger.Stats(), referencePrices, e.est)
}

// TradeHistory exposes the most recent trades, newest last.
func (e *Engine) TradeHistory(limit int) []types.TradeRecord {
	return e.ledger.TradeHistory(limit)
}

// SessionAdvice labels the current trading session.
func (e *Engine) SessionAdvice() session.Advice {
	return session.Advise(e.now())
}

func (e *Engine) equity() float64 {
	total := 0.0
	for asset, qty := range e.ledger.Balances() {
		if p, ok := referencePrices[asset]; ok {
			total += qty * p
		} else {
			total += qty
		}
	}
	return total
}
