// Package exchange defines the market-access capability. The in-tree
// provider is the paper ledger; a live venue client would implement the
// same interface behind real I/O.
package exchange

import (
	"context"
	"errors"

	"github.com/evdnx/papertrader/types"
)

var (
	// ErrInsufficientFunds rejects an order that would drive a balance
	// negative. The order has no partial effect.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnsupportedPair rejects an instrument the venue does not list.
	ErrUnsupportedPair = errors.New("unsupported pair")
)

// Exchange is the capability surface the decision engine trades through.
type Exchange interface {
	Balances() map[string]float64
	Price(ctx context.Context, pair string) (float64, error)
	OHLC(ctx context.Context, pair string) ([]types.Bar, error)
	Buy(ctx context.Context, pair string, qty float64) (string, error)
	Sell(ctx context.Context, pair string, qty float64) (string, error)
}
