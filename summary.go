package stockfolio

import (
	"errors"
)

// ErrNoHistory reports a summary requested for an empty snapshot sequence.
var ErrNoHistory = errors.New("no historical data for instrument")

// NewSummary condenses an instrument's daily snapshot sequence into the
// structured summary consumed by a QualitativeScorer.
func NewSummary(instrument string, snapshots []DailySnapshot) (Summary, error) {
	if len(snapshots) == 0 {
		return Summary{}, ErrNoHistory
	}

	first, last := snapshots[0], snapshots[len(snapshots)-1]

	s := Summary{
		Instrument:    instrument,
		CurrentPrice:  last.Price,
		Shares:        last.Shares,
		TotalPaidIn:   last.PaidIn,
		YearsHeld:     last.YearsHeld,
		InvestedYears: float64(last.On.Sub(first.On)) / daysPerYear,
	}

	if !last.Shares.IsZero() {
		s.AveragePaid = last.PaidIn.Div(last.Shares)
	} else {
		s.AveragePaid = M(0, USD)
	}

	if !last.PaidIn.IsZero() {
		profit := last.Price.Mul(last.Shares).Sub(last.PaidIn)
		// Percentages are presentation values, float precision is enough here.
		s.PercentChange = profit.AsFloat() / last.PaidIn.AsFloat() * 100
	}

	return s, nil
}
