package stockfolio

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/etnz/stockfolio/date"
)

func TestMarketUpdate(t *testing.T) {
	l := NewLedger()
	l.Append(buy("AAPL", "2024-01-02", 10, 1000))

	provider := &stubProvider{daily: map[string]*date.History[float64]{
		"AAPL": series(t, "2024-01-02", 100.0, "2024-01-03", 101.0, "2024-01-04", 102.0),
	}}

	m := NewMarket()
	m.Append("AAPL", day("2024-01-02"), 100)

	if err := m.Update(context.Background(), provider, l, day("2024-01-04")); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got := m.Series("AAPL")
	if got.Len() != 3 {
		t.Fatalf("cached %d closes, want 3", got.Len())
	}
	if on, close := got.Latest(); on != day("2024-01-04") || close != 102 {
		t.Errorf("Latest() = %s, %v", on, close)
	}
}

func TestMarketUpdateAlreadyCurrent(t *testing.T) {
	l := NewLedger()
	l.Append(buy("AAPL", "2024-01-02", 10, 1000))

	// A provider with no data would fail any fetch. It must not be called.
	provider := &stubProvider{}

	m := NewMarket()
	m.Append("AAPL", day("2024-01-04"), 102)

	if err := m.Update(context.Background(), provider, l, day("2024-01-04")); err != nil {
		t.Fatalf("Update() hit the provider for a current cache: %v", err)
	}
}

func TestMarketUpdatePartialFailure(t *testing.T) {
	l := NewLedger()
	l.Append(
		buy("AAPL", "2024-01-02", 10, 1000),
		buy("GOOG", "2024-01-02", 2, 300),
	)
	provider := &stubProvider{daily: map[string]*date.History[float64]{
		"AAPL": series(t, "2024-01-02", 100.0),
	}}

	m := NewMarket()
	err := m.Update(context.Background(), provider, l, day("2024-01-02"))
	if err == nil || !strings.Contains(err.Error(), "GOOG") {
		t.Fatalf("Update() error = %v, want GOOG failure", err)
	}
	// The failing instrument did not block the other.
	if !m.Has("AAPL") {
		t.Error("AAPL update was blocked by the GOOG failure")
	}
}

func TestMarketRoundTrip(t *testing.T) {
	m := NewMarket()
	m.Append("AAPL", day("2024-01-02"), 185.64)
	m.Append("AAPL", day("2024-01-03"), 184.25)
	m.Append("GOOG", day("2024-01-02"), 138.17)

	var buf bytes.Buffer
	if err := EncodeMarket(&buf, m); err != nil {
		t.Fatalf("EncodeMarket() error = %v", err)
	}

	got, err := DecodeMarket(&buf)
	if err != nil {
		t.Fatalf("DecodeMarket() error = %v", err)
	}
	if v, ok := got.Series("AAPL").Get(day("2024-01-03")); !ok || v != 184.25 {
		t.Errorf("round-trip AAPL 2024-01-03 = %v, %v", v, ok)
	}
	if len(got.Instruments()) != 2 {
		t.Errorf("Instruments() = %v", got.Instruments())
	}
}

func TestLedgerRoundTrip(t *testing.T) {
	raw := `[
	  {"Ticker Symbol": "AAPL", "Date": "15-11-2020", "Transaction Type": "BUY",
	   "No. of Shares": 10, "Transaction Valuation USD": "$1,234.56",
	   "Average Cost per Share USD": "$123.46"}
	]`

	l, err := DecodeLedger(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}

	// Canonical form: ISO dates, undecorated amounts.
	out := buf.String()
	if !strings.Contains(out, `"Date": "2020-11-15"`) {
		t.Errorf("encoded date not canonical:\n%s", out)
	}
	if !strings.Contains(out, `"Transaction Valuation USD": 1234.56`) {
		t.Errorf("encoded amount not canonical:\n%s", out)
	}

	// And it decodes back to the same ledger.
	again, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("DecodeLedger() round-trip error = %v", err)
	}
	if again.Len() != 1 || !again.Transactions("AAPL")[0].Gross.Equal(usd(1234.56)) {
		t.Errorf("round-trip ledger = %+v", again.Transactions("AAPL"))
	}
}
