package stockfolio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/etnz/stockfolio/date"
)

// Market is the local cache of daily closing prices, one chronological
// series per instrument. It backs history builds so a provider round-trip
// is only needed for days not cached yet.
type Market struct {
	series map[string]*date.History[float64]
}

// NewMarket returns an empty market data collection.
func NewMarket() *Market {
	return &Market{series: make(map[string]*date.History[float64])}
}

// Has reports whether any prices are cached for the instrument.
func (m *Market) Has(instrument string) bool {
	h, ok := m.series[instrument]
	return ok && h.Len() > 0
}

// Series returns the closing-price series for the instrument, creating an
// empty one when the instrument is new.
func (m *Market) Series(instrument string) *date.History[float64] {
	h, ok := m.series[instrument]
	if !ok {
		h = &date.History[float64]{}
		m.series[instrument] = h
	}
	return h
}

// Append records a closing price for the instrument on the given day.
func (m *Market) Append(instrument string, on date.Date, close float64) {
	m.Series(instrument).Append(on, close)
}

// Instruments returns all cached instrument symbols, sorted.
func (m *Market) Instruments() []string {
	symbols := make([]string, 0, len(m.series))
	for s := range m.series {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// Update refreshes the cache from the provider for every instrument in the
// ledger, fetching only from the day after the latest cached close (or
// from the instrument's first transaction date when nothing is cached)
// through 'through'.
//
// Per-instrument failures are joined and returned together; one failing
// instrument never prevents the others from updating.
func (m *Market) Update(ctx context.Context, provider PriceProvider, l *Ledger, through date.Date) error {
	var errs error
	for instrument := range l.Instruments() {
		first, ok := l.FirstDate(instrument)
		if !ok {
			continue
		}

		from := first
		series := m.Series(instrument)
		if latest, _ := series.Latest(); !latest.IsZero() {
			if !latest.Before(through) {
				continue // already up to date
			}
			from = latest.Add(1)
		}
		if from.After(through) {
			continue
		}

		fetched, err := provider.Daily(ctx, instrument, from, through)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("cannot update prices for %s: %w", instrument, err))
			continue
		}
		if fetched.Len() == 0 {
			log.Printf("no new prices for %s between %s and %s", instrument, from, through)
			continue
		}
		for on, close := range fetched.Values() {
			series.Append(on, close)
		}
	}
	return errs
}
