package stockfolio

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"
)

// HoldingRow is the current state of one held instrument.
type HoldingRow struct {
	Instrument  string
	Name        string // company name, falls back to the symbol
	Shares      Quantity
	AverageCost Money // paid-in capital per share held
	Price       Money // latest closing price
	PaidIn      Money
	MarketValue Money
	ProfitPct   float64
	Priced      bool // false when the price lookup failed
}

// HoldingReport is the current-holdings view of the whole portfolio: one
// row per held instrument, sorted by market value descending, plus the
// aggregate valuation.
type HoldingReport struct {
	Time   time.Time // generation time
	Rows   []HoldingRow
	Totals Valuation
}

// NewHoldingReport builds the current-holdings report. Price and metadata
// lookups run concurrently per instrument; an instrument that cannot be
// priced keeps its row with a zero market value and Priced set to false.
func NewHoldingReport(ctx context.Context, l *Ledger, prices PriceProvider, meta MetadataProvider, timeout time.Duration) *HoldingReport {
	held := l.Holdings()
	instruments := make([]string, 0, len(held))
	for instrument := range held {
		instruments = append(instruments, instrument)
	}

	quotes := fetchQuotes(ctx, prices, instruments, timeout)
	names := fetchNames(ctx, meta, instruments, timeout)

	report := &HoldingReport{
		Time: time.Now(),
		Totals: Valuation{
			TotalMarketValue: M(0, USD),
			TotalPaidIn:      M(0, USD),
		},
	}

	for instrument, shares := range held {
		paidIn := l.PaidIn(instrument)
		row := HoldingRow{
			Instrument:  instrument,
			Name:        names[instrument],
			Shares:      shares,
			PaidIn:      paidIn,
			AverageCost: paidIn.Div(shares),
			MarketValue: M(0, USD),
			Price:       M(0, USD),
		}

		report.Totals.TotalPaidIn = report.Totals.TotalPaidIn.Add(paidIn)
		if q := quotes[instrument]; q.err == nil {
			row.Priced = true
			row.Price = M(q.price, USD)
			row.MarketValue = row.Price.Mul(shares)
			if !paidIn.IsZero() {
				row.ProfitPct = row.MarketValue.Sub(paidIn).AsFloat() / paidIn.AsFloat() * 100
			}
			report.Totals.TotalMarketValue = report.Totals.TotalMarketValue.Add(row.MarketValue)
		} else {
			log.Printf("warning: %v", q.err)
			report.Totals.Unpriced = append(report.Totals.Unpriced, instrument)
		}
		report.Rows = append(report.Rows, row)
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		a, b := report.Rows[i], report.Rows[j]
		if !a.MarketValue.Equal(b.MarketValue) {
			return b.MarketValue.LessThan(a.MarketValue)
		}
		return a.Instrument < b.Instrument
	})
	sort.Strings(report.Totals.Unpriced)
	report.Totals.TotalProfitLoss = report.Totals.TotalMarketValue.Sub(report.Totals.TotalPaidIn)
	return report
}

// fetchNames resolves company names concurrently. A failed lookup falls
// back to the instrument symbol, name resolution is cosmetic.
func fetchNames(ctx context.Context, meta MetadataProvider, instruments []string, timeout time.Duration) map[string]string {
	if timeout <= 0 {
		timeout = DefaultPriceTimeout
	}

	type resolved struct{ instrument, name string }
	results := make(chan resolved, len(instruments))
	var wg sync.WaitGroup
	for _, instrument := range instruments {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := instrument
			if meta != nil {
				nctx, cancel := context.WithTimeout(ctx, timeout)
				defer cancel()
				if n, err := meta.Name(nctx, instrument); err == nil && n != "" {
					name = n
				} else if err != nil {
					log.Printf("cannot resolve name for %s: %v", instrument, err)
				}
			}
			results <- resolved{instrument: instrument, name: name}
		}()
	}
	wg.Wait()
	close(results)

	names := make(map[string]string, len(instruments))
	for r := range results {
		names[r.instrument] = r.name
	}
	return names
}
