package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	OrdersExecuted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "papertrader_orders_executed_total",
			Help: "Total number of orders executed against the paper ledger (by side).",
		},
		[]string{"side"},
	)

	OrdersRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "papertrader_orders_rejected_total",
			Help: "Total number of rejected orders (by reason).",
		},
		[]string{"reason"},
	)

	SignalsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "papertrader_signals_generated_total",
			Help: "Total number of signals produced (by strategy and action).",
		},
		[]string{"strategy", "action"},
	)

	EquityGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "papertrader_equity_gbp",
			Help: "Current total equity of the paper ledger valued in GBP.",
		},
	)

	RealizedPnL = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "papertrader_realized_pnl_gbp",
			Help: "Cumulative realized P&L recorded by the outcome model (can go negative).",
		},
	)
)

func init() {
	prometheus.MustRegister(OrdersExecuted, OrdersRejected, SignalsGenerated, EquityGauge, RealizedPnL)
}
