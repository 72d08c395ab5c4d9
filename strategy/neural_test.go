package strategy

import (
	"testing"

	"github.com/evdnx/papertrader/types"
)

func TestNeural_ShortHistoryHolds(t *testing.T) {
	n := &neural{}
	sig := n.Evaluate(inputFor(flat(100, 10), tradingHour))
	if sig.Action != types.ActionHold {
		t.Fatalf("expected HOLD on short history, got %s", sig.Action)
	}
	if sig.Confidence != 38 {
		t.Fatalf("expected fallback confidence 38, got %.1f", sig.Confidence)
	}
}

/*
-----------------------------------------------------------------------
The blend is deterministic for a given series: two evaluations of the
same input must agree exactly.
-----------------------------------------------------------------------
*/
func TestNeural_Deterministic(t *testing.T) {
	n := &neural{}
	in := inputFor(rampUp(100, 0.015, 80), tradingHour)
	first := n.Evaluate(in)
	second := n.Evaluate(in)
	if first.Action != second.Action || first.Confidence != second.Confidence || first.Score != second.Score {
		t.Fatalf("blend not deterministic: %+v vs %+v", first, second)
	}
}

func TestNeural_FlatIsNeutral(t *testing.T) {
	n := &neural{}
	sig := n.Evaluate(inputFor(flat(100, 60), tradingHour))
	if sig.Action != types.ActionHold {
		t.Fatalf("expected HOLD on flat series, got %s (score %.2f)", sig.Action, sig.Score)
	}
}
