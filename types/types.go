package types

import "time"

// Side is the direction of an executed order.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Action is what a strategy recommends. Unlike Side it includes HOLD.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// RiskLevel classifies a signal's downside exposure.
type RiskLevel string

const (
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
	RiskExtreme RiskLevel = "EXTREME"
)

// RegimeType is a coarse classification of current market behaviour.
type RegimeType string

const (
	TrendingUp     RegimeType = "TRENDING_UP"
	TrendingDown   RegimeType = "TRENDING_DOWN"
	Sideways       RegimeType = "SIDEWAYS"
	HighVolatility RegimeType = "HIGH_VOLATILITY"
	Breakout       RegimeType = "BREAKOUT"
)

// MarketRegime is recomputed fresh from the rolling price window on every
// request; it is never persisted.
type MarketRegime struct {
	Type       RegimeType
	Confidence float64 // [0,1]
	Volatility float64 // stdev of consecutive returns
	Momentum   float64
	Strength   float64
	Duration   int    // estimated sessions the regime has held
	Quality    string // trend-quality label
}

// TradingSignal is an immutable recommendation. The base evaluators only
// set action, confidence, strategy, rationale and score; expected return,
// risk level and the stop/target prices are filled in by the
// post-processor.
type TradingSignal struct {
	Action         Action
	Confidence     float64 // [0,100]
	Strategy       string
	Rationale      string
	ExpectedReturn float64
	Risk           RiskLevel
	StopLoss       float64
	TakeProfit     float64
	Regime         RegimeType
	Score          float64 // technical score in [0,1]
}

// TradeRecord is created exactly once per successful order and never
// mutated afterwards.
type TradeRecord struct {
	Side      Side
	Asset     string
	Quantity  float64
	Price     float64
	Timestamp time.Time
	Profit    float64 // realized edge drawn by the outcome model
}

// Bar is a single OHLC sample returned by the market generator.
type Bar struct {
	Timestamp time.Time
	Price     float64
}

// BotStats is a derived snapshot computed on demand from ledger state.
type BotStats struct {
	Trades       int
	WinRate      float64
	TotalProfit  float64
	ROI          float64
	MaxDrawdown  float64
	Sharpe       float64
	Sortino      float64
	Calmar       float64
	ProfitFactor float64
	Streak       int // signed: positive = consecutive wins
	BestStreak   int
	AvgHoldTime  time.Duration
}

// RiskMetrics is a point-in-time view over the realized P&L window.
type RiskMetrics struct {
	VaR95             float64
	ExpectedShortfall float64
	Beta              float64
	Correlation       float64
	InformationRatio  float64
	TreynorRatio      float64
	JensenAlpha       float64
}
