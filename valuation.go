package stockfolio

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// PriceUnavailableError reports a failed price lookup for one instrument.
// The instrument still contributes zero to aggregate totals, visibly.
type PriceUnavailableError struct {
	Instrument string
	Err        error
}

func (e *PriceUnavailableError) Error() string {
	return fmt.Sprintf("price unavailable for %s: %v", e.Instrument, e.Err)
}

func (e *PriceUnavailableError) Unwrap() error { return e.Err }

// Valuation is the portfolio-level aggregate of current holdings.
//
// When some instruments could not be priced, totals are partial: the
// unpriced instruments contribute zero market value and are listed in
// Unpriced rather than silently omitted.
type Valuation struct {
	TotalMarketValue Money
	TotalPaidIn      Money
	TotalProfitLoss  Money
	Unpriced         []string // instruments whose price lookup failed, sorted
}

// DefaultPriceTimeout bounds each instrument's price lookup.
const DefaultPriceTimeout = 10 * time.Second

// quote is the outcome of one instrument's price lookup.
type quote struct {
	instrument string
	price      float64
	err        error
}

// fetchQuotes looks up the latest price of every instrument concurrently.
// Each lookup gets its own bounded timeout; a failed instrument never
// aborts the others.
func fetchQuotes(ctx context.Context, provider PriceProvider, instruments []string, timeout time.Duration) map[string]quote {
	if timeout <= 0 {
		timeout = DefaultPriceTimeout
	}

	results := make(chan quote, len(instruments))
	var wg sync.WaitGroup
	for _, instrument := range instruments {
		wg.Add(1)
		go func() {
			defer wg.Done()
			qctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			price, err := provider.Latest(qctx, instrument)
			if err != nil {
				err = &PriceUnavailableError{Instrument: instrument, Err: err}
			}
			results <- quote{instrument: instrument, price: price, err: err}
		}()
	}
	wg.Wait()
	close(results)

	quotes := make(map[string]quote, len(instruments))
	for q := range results {
		quotes[q.instrument] = q
	}
	return quotes
}

// Value computes the aggregate valuation of the ledger's current holdings
// using latest prices from the provider.
//
// TotalPaidIn is computed over the full ledger, independently of any
// time-series build, so it stays meaningful even when prices are partial.
func Value(ctx context.Context, l *Ledger, provider PriceProvider, timeout time.Duration) Valuation {
	held := l.Holdings()
	instruments := make([]string, 0, len(held))
	for instrument := range held {
		instruments = append(instruments, instrument)
	}

	quotes := fetchQuotes(ctx, provider, instruments, timeout)

	v := Valuation{
		TotalMarketValue: M(0, USD),
		TotalPaidIn:      M(0, USD),
	}
	for instrument, shares := range held {
		v.TotalPaidIn = v.TotalPaidIn.Add(l.PaidIn(instrument))
		q := quotes[instrument]
		if q.err != nil {
			v.Unpriced = append(v.Unpriced, instrument)
			continue
		}
		v.TotalMarketValue = v.TotalMarketValue.Add(M(q.price, USD).Mul(shares))
	}
	sort.Strings(v.Unpriced)
	v.TotalProfitLoss = v.TotalMarketValue.Sub(v.TotalPaidIn)
	return v
}
