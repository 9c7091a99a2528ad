package stockfolio

import (
	"errors"
	"fmt"
	"iter"
	"sort"
	"strconv"
	"strings"

	"github.com/etnz/stockfolio/date"
	"github.com/shopspring/decimal"
)

// Raw record field names, as exported by the transaction source.
const (
	FieldTicker   = "Ticker Symbol"
	FieldDate     = "Date"
	FieldType     = "Transaction Type"
	FieldShares   = "No. of Shares"
	FieldGross    = "Transaction Valuation USD"
	FieldUnitCost = "Average Cost per Share USD"
)

// Record is one raw, untyped transaction entry as found in the ledger file.
type Record map[string]any

// MalformedRecordError reports a single raw record that could not be
// normalized. It carries enough context for the caller to report or skip it.
type MalformedRecordError struct {
	Index      int    // position of the record in the raw sequence
	Instrument string // ticker, when it could be read
	Field      string // offending field name
	Raw        string // raw value of the offending field
	Err        error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record #%d (instrument %q) field %q = %q: %v", e.Index, e.Instrument, e.Field, e.Raw, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// HoldingEpsilon is the threshold below which a position is considered
// empty. Positions ending at or below it are excluded from current
// holdings views; their historical series remains valid.
var HoldingEpsilon = Q(0.001)

// Ledger is a normalized, time-ordered collection of transactions,
// grouped by instrument.
//
// Within an instrument, transactions are non-decreasing by date; same-date
// entries keep their original ledger order (stable sort).
type Ledger struct {
	transactions map[string][]Transaction // by instrument, chronological
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make(map[string][]Transaction)}
}

// Append adds transactions to the ledger, keeping each instrument's
// sequence chronological.
func (l *Ledger) Append(txs ...Transaction) {
	touched := make(map[string]struct{})
	for _, tx := range txs {
		l.transactions[tx.Instrument] = append(l.transactions[tx.Instrument], tx)
		touched[tx.Instrument] = struct{}{}
	}
	for instrument := range touched {
		l.stableSort(instrument)
	}
}

func (l *Ledger) stableSort(instrument string) {
	txs := l.transactions[instrument]
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].On.Before(txs[j].On) })
}

// Len returns the total number of transactions across all instruments.
func (l *Ledger) Len() int {
	n := 0
	for _, txs := range l.transactions {
		n += len(txs)
	}
	return n
}

// Instruments returns an iterator over all instrument symbols, sorted.
func (l *Ledger) Instruments() iter.Seq[string] {
	symbols := make([]string, 0, len(l.transactions))
	for s := range l.transactions {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return func(yield func(string) bool) {
		for _, s := range symbols {
			if !yield(s) {
				return
			}
		}
	}
}

// Transactions returns the chronological transaction sequence for one
// instrument. The returned slice is owned by the ledger, callers must not
// mutate it.
func (l *Ledger) Transactions(instrument string) []Transaction {
	return l.transactions[instrument]
}

// FirstDate returns the date of the earliest transaction for the
// instrument, and false when the instrument is unknown.
func (l *Ledger) FirstDate(instrument string) (date.Date, bool) {
	txs := l.transactions[instrument]
	if len(txs) == 0 {
		return date.Date{}, false
	}
	return txs[0].On, true
}

// Position returns the net shares held for one instrument over the full
// ledger, clamped at zero.
func (l *Ledger) Position(instrument string) Quantity {
	shares := Q(0)
	for _, tx := range l.transactions[instrument] {
		switch tx.Action {
		case Acquire:
			shares = shares.Add(tx.Quantity)
		case Dispose:
			shares = shares.Sub(tx.Quantity)
			if shares.IsNegative() {
				shares = Q(0)
			}
		}
	}
	return shares
}

// PaidIn returns the net capital committed to one instrument over the full
// ledger: acquisition gross amounts minus disposal gross amounts, clamped
// at zero.
func (l *Ledger) PaidIn(instrument string) Money {
	paid := M(0, USD)
	for _, tx := range l.transactions[instrument] {
		switch tx.Action {
		case Acquire:
			paid = paid.Add(tx.Gross)
		case Dispose:
			paid = paid.Sub(tx.Gross)
			if paid.IsNegative() {
				paid = M(0, USD)
			}
		}
	}
	return paid
}

// Holdings returns the instruments currently held, i.e. those whose net
// position exceeds HoldingEpsilon, with their share counts.
func (l *Ledger) Holdings() map[string]Quantity {
	held := make(map[string]Quantity)
	for instrument := range l.transactions {
		if position := l.Position(instrument); position.GreaterThan(HoldingEpsilon) {
			held[instrument] = position
		}
	}
	return held
}

// Normalize parses raw transaction records into a canonical Ledger.
//
// Records with a missing or unparseable instrument, date, action or
// quantity fail with a MalformedRecordError; errors for all offending
// records are joined so one bad entry does not hide the others. The
// returned ledger contains every record that normalized cleanly.
func Normalize(records []Record) (*Ledger, error) {
	ledger := NewLedger()
	var errs error

	for i, rec := range records {
		tx, err := normalizeRecord(i, rec)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		// Append one by one keeps file order for same-date entries.
		ledger.transactions[tx.Instrument] = append(ledger.transactions[tx.Instrument], tx)
	}
	for instrument := range ledger.transactions {
		ledger.stableSort(instrument)
	}
	return ledger, errs
}

func normalizeRecord(index int, rec Record) (Transaction, error) {
	var tx Transaction

	instrument, _ := rec[FieldTicker].(string)
	instrument = strings.TrimSpace(instrument)
	malformed := func(field, raw string, err error) error {
		return &MalformedRecordError{Index: index, Instrument: instrument, Field: field, Raw: raw, Err: err}
	}

	if instrument == "" {
		return tx, malformed(FieldTicker, "", errors.New("missing instrument symbol"))
	}
	tx.Instrument = instrument

	on, raw, err := coerceDate(rec[FieldDate])
	if err != nil {
		return tx, malformed(FieldDate, raw, err)
	}
	tx.On = on

	rawType, _ := rec[FieldType].(string)
	action, err := ParseAction(rawType)
	if err != nil {
		return tx, malformed(FieldType, rawType, err)
	}
	tx.Action = action

	quantity, raw, err := coerceDecimal(rec[FieldShares])
	if err != nil {
		return tx, malformed(FieldShares, raw, err)
	}
	if !quantity.IsPositive() {
		return tx, malformed(FieldShares, raw, errors.New("quantity must be positive"))
	}
	tx.Quantity = Q(quantity)

	gross, raw, err := coerceDecimal(rec[FieldGross])
	if err != nil {
		return tx, malformed(FieldGross, raw, err)
	}
	if gross.IsNegative() {
		return tx, malformed(FieldGross, raw, errors.New("gross amount must not be negative"))
	}
	tx.Gross = M(gross, USD)

	return tx, nil
}

// coerceDate accepts an already-structured date or a raw day-month-year
// string, and returns the parsed date together with the raw text seen.
func coerceDate(v any) (date.Date, string, error) {
	switch d := v.(type) {
	case date.Date:
		return d, d.String(), nil
	case string:
		on, err := date.ParseLedger(d)
		if err != nil {
			// Some exports are already in ISO form.
			if iso, isoErr := date.Parse(d); isoErr == nil {
				return iso, d, nil
			}
			return date.Date{}, d, err
		}
		return on, d, nil
	case nil:
		return date.Date{}, "", errors.New("missing date")
	default:
		return date.Date{}, fmt.Sprint(v), fmt.Errorf("unsupported date type %T", v)
	}
}

// coerceDecimal accepts an already-numeric value or a string with monetary
// decoration (currency symbol, thousands separators) and returns its exact
// decimal value together with the raw text seen.
func coerceDecimal(v any) (decimal.Decimal, string, error) {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), strconv.FormatFloat(n, 'f', -1, 64), nil
	case float32:
		return decimal.NewFromFloat32(n), fmt.Sprint(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), strconv.Itoa(n), nil
	case int64:
		return decimal.NewFromInt(n), strconv.FormatInt(n, 10), nil
	case decimal.Decimal:
		return n, n.String(), nil
	case string:
		stripped := stripMoneyDecoration(n)
		if stripped == "" {
			return decimal.Decimal{}, n, errors.New("missing numeric value")
		}
		d, err := decimal.NewFromString(stripped)
		if err != nil {
			return decimal.Decimal{}, n, fmt.Errorf("not a number: %w", err)
		}
		return d, n, nil
	case nil:
		return decimal.Decimal{}, "", errors.New("missing numeric value")
	default:
		return decimal.Decimal{}, fmt.Sprint(v), fmt.Errorf("unsupported numeric type %T", v)
	}
}

// stripMoneyDecoration removes currency symbols, thousands separators and
// whitespace, keeping digits, sign and decimal point: "$1,234.56" -> "1234.56".
func stripMoneyDecoration(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+':
			b.WriteRune(r)
		}
	}
	return b.String()
}
