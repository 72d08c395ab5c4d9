// Package session labels the current trading session from a supplied
// UTC time. Pure lookup, no state; the time is always injected so the
// boundaries are testable.
package session

import "time"

// Advice describes the session the given instant falls into.
type Advice struct {
	Open  bool
	Label string
	Hint  string
}

// sessionBand maps an inclusive UTC hour range to its label and hint.
type sessionBand struct {
	fromHour, toHour int
	label            string
	hint             string
}

var sessionBands = []sessionBand{
	{0, 5, "Asian session", "thin books: scalp small or stay out"},
	{6, 6, "pre-London", "liquidity building: wait for the open"},
	{7, 10, "London open", "deep liquidity: trend entries work best"},
	{11, 12, "midday lull", "spreads widen: mean reversion only"},
	{13, 16, "New York overlap", "peak liquidity: momentum hour"},
	{17, 20, "New York close", "flows unwinding: take profits"},
	{21, 23, "after hours", "thin books: reduce size"},
}

// Advise maps t (interpreted in UTC) to its session. Weekends count as
// closed; crypto venues never sleep, but the strategies this advises
// assume fiat-pair liquidity.
func Advise(t time.Time) Advice {
	u := t.UTC()
	if wd := u.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return Advice{
			Open:  false,
			Label: "weekend",
			Hint:  "fiat liquidity offline: observation only",
		}
	}
	h := u.Hour()
	for _, b := range sessionBands {
		if h >= b.fromHour && h <= b.toHour {
			return Advice{Open: true, Label: b.label, Hint: b.hint}
		}
	}
	// Unreachable while the table covers 0-23; keep a sane fallback.
	return Advice{Open: true, Label: "off-session", Hint: "reduce size"}
}
