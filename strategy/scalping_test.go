package strategy

import (
	"testing"

	"github.com/evdnx/papertrader/types"
)

func TestScalping_BurstUpBuys(t *testing.T) {
	s := &scalping{}
	prices := append(flat(100, 17), 101, 102, 103)
	sig := s.Evaluate(inputFor(prices, tradingHour))
	if sig.Action != types.ActionBuy {
		t.Fatalf("expected BUY on upward burst, got %s (%s)", sig.Action, sig.Rationale)
	}
}

func TestScalping_BurstDownSells(t *testing.T) {
	s := &scalping{}
	prices := append(flat(100, 17), 99, 98, 97)
	sig := s.Evaluate(inputFor(prices, tradingHour))
	if sig.Action != types.ActionSell {
		t.Fatalf("expected SELL on downward burst, got %s (%s)", sig.Action, sig.Rationale)
	}
}

func TestScalping_QuietTapeHolds(t *testing.T) {
	s := &scalping{}
	sig := s.Evaluate(inputFor(flat(100, 30), tradingHour))
	if sig.Action != types.ActionHold {
		t.Fatalf("expected HOLD on quiet tape, got %s", sig.Action)
	}
}

func TestScalping_ShortHistoryHolds(t *testing.T) {
	s := &scalping{}
	sig := s.Evaluate(inputFor(flat(100, 5), tradingHour))
	if sig.Action != types.ActionHold {
		t.Fatalf("expected HOLD on short history, got %s", sig.Action)
	}
	if sig.Confidence != 34 {
		t.Fatalf("expected fallback confidence 34, got %.1f", sig.Confidence)
	}
}
