package stockfolio

import (
	"errors"
	"fmt"

	"github.com/etnz/stockfolio/date"
)

// ErrNoTransactions reports a history build attempted on an instrument with
// an empty transaction sequence. It is instrument-local and recoverable.
var ErrNoTransactions = errors.New("no transactions for instrument")

// ErrNoPriceData reports a history build attempted with an empty price
// series. It is instrument-local and recoverable.
var ErrNoPriceData = errors.New("no price data for instrument")

// OversoldError reports a disposal exceeding the recorded position. It is
// returned only by strict builds; the default policy clamps instead.
type OversoldError struct {
	Tx   Transaction
	Held Quantity
}

func (e *OversoldError) Error() string {
	return fmt.Sprintf("disposal of %s %s on %s exceeds recorded position of %s", e.Tx.Quantity, e.Tx.Instrument, e.Tx.On, e.Held)
}

// DailySnapshot is the portfolio state of one instrument at the close of
// one trading day. Snapshot sequences are immutable once produced.
type DailySnapshot struct {
	On          date.Date
	Price       Money    // closing price per unit
	Shares      Quantity // cumulative shares held
	PaidIn      Money    // cumulative capital committed, clamped at zero
	MarketValue Money    // Shares x Price, floored at zero
	Trades      int      // transactions reflected so far
	YearsHeld   float64  // cumulative holding-streak duration, in years
}

const daysPerYear = 365.25

// position is the accumulator threaded through the merge-walk. It is owned
// exclusively by one BuildHistory call and never shared.
type position struct {
	shares      Quantity
	paidIn      Money
	trades      int
	streakStart date.Date // start of the open holding streak, zero when none
	heldDays    int       // total days of closed holding streaks
}

// apply folds one transaction into the position.
//
// Disposals that would drive shares or paid-in capital negative are clamped
// at zero: the ledger records no short positions, an overdraw reflects data
// quality, not a modeled short. Strict mode rejects them instead.
func (p *position) apply(tx Transaction, strict bool) error {
	switch tx.Action {
	case Acquire:
		if p.shares.LessThanOrEqual(HoldingEpsilon) {
			// Position was empty: a new holding streak begins.
			p.streakStart = tx.On
		}
		p.shares = p.shares.Add(tx.Quantity)
		p.paidIn = p.paidIn.Add(tx.Gross)
	case Dispose:
		if strict && tx.Quantity.GreaterThan(p.shares) {
			return &OversoldError{Tx: tx, Held: p.shares}
		}
		p.shares = p.shares.Sub(tx.Quantity)
		if p.shares.IsNegative() {
			p.shares = Q(0)
		}
		p.paidIn = p.paidIn.Sub(tx.Gross)
		if p.paidIn.IsNegative() {
			p.paidIn = M(0, USD)
		}
		if p.shares.LessThanOrEqual(HoldingEpsilon) && !p.streakStart.IsZero() {
			// Position is back to empty: close the streak.
			p.heldDays += tx.On.Sub(p.streakStart)
			p.streakStart = date.Date{}
		}
	}
	p.trades++
	return nil
}

// yearsHeld returns the cumulative holding duration as of 'on', counting
// the open streak without mutating the accumulator.
func (p *position) yearsHeld(on date.Date) float64 {
	days := p.heldDays
	if !p.streakStart.IsZero() {
		days += on.Sub(p.streakStart)
	}
	return float64(days) / daysPerYear
}

type buildOptions struct {
	strict bool
}

// BuildOption customizes a history build.
type BuildOption func(*buildOptions)

// WithStrictDisposals rejects disposals exceeding the recorded position
// with an OversoldError instead of clamping the position at zero.
func WithStrictDisposals() BuildOption {
	return func(o *buildOptions) { o.strict = true }
}

// BuildHistory merges a chronological transaction sequence for one
// instrument with a daily closing-price series, and returns one
// DailySnapshot per trading day on-or-after the first transaction date.
//
// Transactions dated on or before a trading day are reflected in that
// day's closing snapshot. Transactions dated after the last price point
// are not applied; the price series must extend to the present for a
// complete picture.
//
// Re-running BuildHistory on the same inputs yields an identical sequence.
func BuildHistory(txs []Transaction, prices *date.History[float64], opts ...BuildOption) ([]DailySnapshot, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	if len(txs) == 0 {
		return nil, ErrNoTransactions
	}
	if prices.Len() == 0 {
		return nil, ErrNoPriceData
	}

	first := txs[0].On
	var pos position
	snapshots := make([]DailySnapshot, 0, prices.Len())
	cursor := 0

	for on, close := range prices.Values() {
		// Apply every transaction dated on-or-before this trading day,
		// in ledger order, before evaluating the close.
		for cursor < len(txs) && !txs[cursor].On.After(on) {
			if err := pos.apply(txs[cursor], o.strict); err != nil {
				return nil, err
			}
			cursor++
		}

		if on.Before(first) {
			continue
		}

		price := M(close, USD)
		value := price.Mul(pos.shares)
		if value.IsNegative() {
			value = M(0, USD)
		}
		snapshots = append(snapshots, DailySnapshot{
			On:          on,
			Price:       price,
			Shares:      pos.shares,
			PaidIn:      pos.paidIn,
			MarketValue: value,
			Trades:      pos.trades,
			YearsHeld:   pos.yearsHeld(on),
		})
	}

	return snapshots, nil
}
