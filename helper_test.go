package stockfolio

import (
	"testing"

	"github.com/etnz/stockfolio/date"
)

func usd(v float64) Money { return M(v, USD) }

func day(s string) date.Date { return date.MustParse(s) }

// buy and sell build transactions the way Normalize would emit them.
func buy(instrument, on string, shares, gross float64) Transaction {
	return Transaction{Instrument: instrument, On: day(on), Action: Acquire, Quantity: Q(shares), Gross: usd(gross)}
}

func sell(instrument, on string, shares, gross float64) Transaction {
	return Transaction{Instrument: instrument, On: day(on), Action: Dispose, Quantity: Q(shares), Gross: usd(gross)}
}

// series builds a price history from alternating date/close pairs.
func series(t *testing.T, pairs ...any) *date.History[float64] {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatal("series wants date/close pairs")
	}
	h := &date.History[float64]{}
	for i := 0; i < len(pairs); i += 2 {
		h.Append(day(pairs[i].(string)), pairs[i+1].(float64))
	}
	return h
}
