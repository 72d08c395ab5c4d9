package strategy

import (
	"testing"

	"github.com/evdnx/papertrader/types"
)

/*
-----------------------------------------------------------------------
Test 1 – an accelerating ramp keeps the MACD histogram positive and the
fast EMA above the slow one: momentum goes long.
-----------------------------------------------------------------------
*/
func TestMomentum_RampBuys(t *testing.T) {
	m := &momentum{}
	sig := m.Evaluate(inputFor(rampUp(100, 0.02, 40), tradingHour))
	if sig.Action != types.ActionBuy {
		t.Fatalf("expected BUY on accelerating ramp, got %s (%s)", sig.Action, sig.Rationale)
	}
	if sig.Confidence < 30 || sig.Confidence > 95 {
		t.Fatalf("confidence %.1f outside [30,95]", sig.Confidence)
	}
}

/*
-----------------------------------------------------------------------
Test 2 – the mirrored decline goes short.
-----------------------------------------------------------------------
*/
func TestMomentum_DeclineSells(t *testing.T) {
	m := &momentum{}
	sig := m.Evaluate(inputFor(rampDown(100, 0.02, 40), tradingHour))
	if sig.Action != types.ActionSell {
		t.Fatalf("expected SELL on decline, got %s (%s)", sig.Action, sig.Rationale)
	}
}

/*
-----------------------------------------------------------------------
Test 3 – flat series: EMAs coincide and the histogram is zero.
-----------------------------------------------------------------------
*/
func TestMomentum_FlatHolds(t *testing.T) {
	m := &momentum{}
	sig := m.Evaluate(inputFor(flat(100, 40), tradingHour))
	if sig.Action != types.ActionHold {
		t.Fatalf("expected HOLD on flat series, got %s", sig.Action)
	}
}

func TestMomentum_ShortHistoryHolds(t *testing.T) {
	m := &momentum{}
	sig := m.Evaluate(inputFor(rampUp(100, 0.02, 20), tradingHour))
	if sig.Action != types.ActionHold {
		t.Fatalf("expected HOLD on short history, got %s", sig.Action)
	}
}
