package testutils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/evdnx/papertrader/types"
)

// ScriptedMarket returns pre-programmed prices in order, repeating the
// last one forever. It satisfies the ledger's MarketSource without
// latency or noise, so tests can pin exact arithmetic.
type ScriptedMarket struct {
	mu     sync.Mutex
	prices []float64
	idx    int
}

// NewScriptedMarket builds a market that serves the given prices.
func NewScriptedMarket(prices ...float64) *ScriptedMarket {
	return &ScriptedMarket{prices: prices}
}

// NextPrice returns the next scripted price.
func (m *ScriptedMarket) NextPrice(ctx context.Context, pair string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prices) == 0 {
		return 0, fmt.Errorf("scripted market: no prices for %s", pair)
	}
	p := m.prices[m.idx]
	if m.idx < len(m.prices)-1 {
		m.idx++
	}
	return p, nil
}

// OHLC synthesizes flat bars at the current scripted price.
func (m *ScriptedMarket) OHLC(ctx context.Context, pair string) ([]types.Bar, error) {
	p, err := m.NextPrice(ctx, pair)
	if err != nil {
		return nil, err
	}
	bars := make([]types.Bar, 121)
	now := time.Now()
	for i := range bars {
		bars[i] = types.Bar{
			Timestamp: now.Add(-time.Duration(len(bars)-1-i) * 600 * time.Second),
			Price:     p,
		}
	}
	return bars, nil
}
