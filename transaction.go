package stockfolio

import (
	"fmt"
	"strings"

	"github.com/etnz/stockfolio/date"
)

// Action is the type of a ledger transaction.
type Action int

const (
	// Acquire increases the position (a "BUY" in the raw ledger).
	Acquire Action = iota
	// Dispose decreases the position (a "SELL" in the raw ledger).
	Dispose
)

func (a Action) String() string {
	switch a {
	case Acquire:
		return "BUY"
	case Dispose:
		return "SELL"
	default:
		return "unknown"
	}
}

// ParseAction parses a raw transaction type into an Action.
func ParseAction(s string) (Action, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return Acquire, nil
	case "SELL":
		return Dispose, nil
	default:
		return 0, fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Transaction is one normalized ledger entry for a single instrument.
//
// It is immutable once created: the normalizer is the only producer.
type Transaction struct {
	Instrument string    // ticker-like symbol, never empty
	On         date.Date // execution date, day granularity
	Action     Action
	Quantity   Quantity // always positive
	Gross      Money    // cash value at execution, never negative
}

// UnitCost returns the cash value per share at execution time.
// It returns zero Money when the quantity is zero.
func (t Transaction) UnitCost() Money {
	if t.Quantity.IsZero() {
		return M(0, t.Gross.Currency())
	}
	return t.Gross.Div(t.Quantity)
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s %s for %s", t.On, t.Action, t.Quantity, t.Instrument, t.Gross)
}
