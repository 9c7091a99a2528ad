package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/stockfolio"
)

// summaryTable lays out a position's key metrics.
func summaryTable(s stockfolio.Summary) *table {
	t := newTable("Metric", "Value")
	t.row("Current Stock Price", s.CurrentPrice.String())
	t.row("Average Price Paid per Share", s.AveragePaid.String())
	t.row("Percentage Change Since Investment", percent(s.PercentChange))
	t.row("Held current amount for", fmt.Sprintf("%.2f years", s.YearsHeld))
	t.row("First Invested", fmt.Sprintf("%.2f years ago", s.InvestedYears))
	t.row("Shares Held", s.Shares.String())
	t.row("Total Value Invested", s.TotalPaidIn.String())
	return t
}

// SummaryMarkdown renders a position's key metrics.
func SummaryMarkdown(s stockfolio.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s position summary\n\n", s.Instrument)
	summaryTable(s).writeTo(&b)
	return b.String()
}
