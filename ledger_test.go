package stockfolio

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func record(ticker, on, action string, shares, gross any) Record {
	return Record{
		FieldTicker: ticker,
		FieldDate:   on,
		FieldType:   action,
		FieldShares: shares,
		FieldGross:  gross,
	}
}

func TestNormalize(t *testing.T) {
	records := []Record{
		record("AAPL", "15-11-2020", "BUY", 10.0, "$1,234.56"),
		record("AAPL", "01-02-2021", "SELL", 4.0, 500.0),
		record("GOOG", "2021-03-05", "buy", "2.5", "3,000"),
	}

	l, err := Normalize(records)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}

	got := slices.Collect(l.Instruments())
	if !slices.Equal(got, []string{"AAPL", "GOOG"}) {
		t.Errorf("Instruments() = %v", got)
	}

	aapl := l.Transactions("AAPL")
	if aapl[0].On != day("2020-11-15") || aapl[0].Action != Acquire {
		t.Errorf("first AAPL tx = %v", aapl[0])
	}
	if !aapl[0].Gross.Equal(usd(1234.56)) {
		t.Errorf("decorated gross = %s, want $1,234.56", aapl[0].Gross)
	}

	goog := l.Transactions("GOOG")
	if goog[0].On != day("2021-03-05") {
		t.Errorf("ISO fallback date = %s", goog[0].On)
	}
	if !goog[0].Quantity.Equal(Q(2.5)) {
		t.Errorf("string quantity = %s, want 2.5", goog[0].Quantity)
	}
}

func TestNormalizeMalformed(t *testing.T) {
	records := []Record{
		record("AAPL", "15-11-2020", "BUY", 10.0, 1000.0),
		record("", "15-11-2020", "BUY", 10.0, 1000.0),
		record("MSFT", "not a date", "BUY", 10.0, 1000.0),
		record("MSFT", "16-11-2020", "TRANSFER", 10.0, 1000.0),
		record("MSFT", "17-11-2020", "SELL", -3.0, 1000.0),
		record("MSFT", "18-11-2020", "BUY", 5.0, 500.0),
	}

	l, err := Normalize(records)
	if err == nil {
		t.Fatal("Normalize() expected joined errors")
	}
	// Every clean record survives.
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2 surviving records", l.Len())
	}

	var malformed *MalformedRecordError
	if !errors.As(err, &malformed) {
		t.Fatalf("error %v is not a MalformedRecordError", err)
	}
	// One joined error per bad record.
	if n := strings.Count(err.Error(), "malformed record"); n != 4 {
		t.Errorf("joined %d record errors, want 4:\n%v", n, err)
	}
}

func TestNormalizeStableSameDateOrder(t *testing.T) {
	records := []Record{
		record("AAPL", "15-11-2020", "BUY", 1.0, 100.0),
		record("AAPL", "15-11-2020", "SELL", 1.0, 100.0),
		record("AAPL", "10-11-2020", "BUY", 2.0, 200.0),
	}

	l, err := Normalize(records)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	txs := l.Transactions("AAPL")
	want := []Action{Acquire, Acquire, Dispose}
	for i, tx := range txs {
		if tx.Action != want[i] {
			t.Errorf("tx[%d].Action = %s, want %s", i, tx.Action, want[i])
		}
	}
	if !txs[0].On.Before(txs[1].On) {
		t.Errorf("sort did not move the earlier record first: %v", txs)
	}
}

func TestLedgerPositionClamped(t *testing.T) {
	l := NewLedger()
	l.Append(
		buy("AAPL", "2024-01-02", 10, 1000),
		sell("AAPL", "2024-01-10", 15, 1800),
		buy("AAPL", "2024-01-20", 3, 450),
	)

	if got := l.Position("AAPL"); !got.Equal(Q(3)) {
		t.Errorf("Position() = %s, want 3 (oversell clamped)", got)
	}
	if got := l.PaidIn("AAPL"); !got.Equal(usd(450)) {
		t.Errorf("PaidIn() = %s, want $450.00 (clamped at zero before re-entry)", got)
	}
}

func TestLedgerHoldings(t *testing.T) {
	l := NewLedger()
	l.Append(
		buy("AAPL", "2024-01-02", 10, 1000),
		buy("GOOG", "2024-01-02", 5, 700),
		sell("GOOG", "2024-02-02", 5, 800),
		buy("DUST", "2024-01-02", 0.0005, 1),
	)

	held := l.Holdings()
	if len(held) != 1 {
		t.Fatalf("Holdings() = %v, want only AAPL", held)
	}
	if !held["AAPL"].Equal(Q(10)) {
		t.Errorf("Holdings()[AAPL] = %s, want 10", held["AAPL"])
	}
}

func TestLedgerFirstDate(t *testing.T) {
	l := NewLedger()
	l.Append(buy("AAPL", "2024-03-01", 1, 100), buy("AAPL", "2024-01-02", 1, 100))

	on, ok := l.FirstDate("AAPL")
	if !ok || on != day("2024-01-02") {
		t.Errorf("FirstDate() = %s, %v", on, ok)
	}
	if _, ok := l.FirstDate("MSFT"); ok {
		t.Error("FirstDate() on unknown instrument should report false")
	}
}
