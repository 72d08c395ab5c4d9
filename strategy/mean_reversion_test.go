package strategy

import (
	"testing"

	"github.com/evdnx/papertrader/types"
)

/*
-----------------------------------------------------------------------
Test 1 – short history falls back to the conservative HOLD.
-----------------------------------------------------------------------
*/
func TestMeanReversion_ShortHistoryHolds(t *testing.T) {
	mr := &meanReversion{}
	sig := mr.Evaluate(inputFor(flat(100, 20), tradingHour))
	if sig.Action != types.ActionHold {
		t.Fatalf("expected HOLD on short history, got %s", sig.Action)
	}
	if sig.Confidence != 35 {
		t.Fatalf("expected fallback confidence 35, got %.1f", sig.Confidence)
	}
}

/*
-----------------------------------------------------------------------
Test 2 – a persistent sell-off leaves RSI on the floor and the price at
the bottom of the band: the strategy fades it with a BUY.
-----------------------------------------------------------------------
*/
func TestMeanReversion_OversoldBuys(t *testing.T) {
	mr := &meanReversion{}
	sig := mr.Evaluate(inputFor(rampDown(100, 0.01, 60), tradingHour))
	if sig.Action != types.ActionBuy {
		t.Fatalf("expected BUY on oversold series, got %s (%s)", sig.Action, sig.Rationale)
	}
	if sig.Confidence < 30 || sig.Confidence > 95 {
		t.Fatalf("confidence %.1f outside [30,95]", sig.Confidence)
	}
}

/*
-----------------------------------------------------------------------
Test 3 – the mirror image: a persistent ramp is faded with a SELL.
-----------------------------------------------------------------------
*/
func TestMeanReversion_OverboughtSells(t *testing.T) {
	mr := &meanReversion{}
	sig := mr.Evaluate(inputFor(rampUp(100, 0.01, 60), tradingHour))
	if sig.Action != types.ActionSell {
		t.Fatalf("expected SELL on overbought series, got %s (%s)", sig.Action, sig.Rationale)
	}
}

/*
-----------------------------------------------------------------------
Test 4 – a flat market has no reversion edge.
-----------------------------------------------------------------------
*/
func TestMeanReversion_FlatHolds(t *testing.T) {
	mr := &meanReversion{}
	sig := mr.Evaluate(inputFor(flat(100, 60), tradingHour))
	if sig.Action != types.ActionHold {
		t.Fatalf("expected HOLD on flat series, got %s", sig.Action)
	}
}
