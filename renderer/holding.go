package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/stockfolio"
)

// HoldingMarkdown renders the current-holdings report: the aggregate
// header first, then one row per held instrument sorted by market value.
// Unpriced instruments render an explicit "unavailable" marker instead of
// silently vanishing from the table.
func HoldingMarkdown(r *stockfolio.HoldingReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Current Stock Holdings\n\n")
	fmt.Fprintf(&b, "_As of %s_\n\n", r.Time.Format("2006-01-02 15:04"))

	fmt.Fprintf(&b, "- **Current Holdings Value**: %s\n", r.Totals.TotalMarketValue)
	fmt.Fprintf(&b, "- **Total Amount Invested**: %s\n", r.Totals.TotalPaidIn)
	if r.Totals.TotalPaidIn.IsZero() {
		fmt.Fprintf(&b, "- **Profit/Loss**: %s\n", r.Totals.TotalProfitLoss.SignedString())
	} else {
		pct := r.Totals.TotalProfitLoss.AsFloat() / r.Totals.TotalPaidIn.AsFloat() * 100
		fmt.Fprintf(&b, "- **Profit/Loss**: %s (%s)\n", r.Totals.TotalProfitLoss.SignedString(), percent(pct))
	}
	if len(r.Totals.Unpriced) > 0 {
		fmt.Fprintf(&b, "\n> ⚠ totals are partial: no price for %s\n", strings.Join(r.Totals.Unpriced, ", "))
	}
	b.WriteString("\n")

	t := newTable("Ticker", "Name", "Shares Held", "Average Cost", "Current Price", "Total Investment", "Current Value", "P/L %")
	for _, row := range r.Rows {
		price, value, pl := row.Price.String(), row.MarketValue.String(), percent(row.ProfitPct)
		if !row.Priced {
			price, value, pl = "unavailable", "unavailable", "-"
		}
		t.row(row.Instrument, row.Name, row.Shares.String(), row.AverageCost.String(), price, row.PaidIn.String(), value, pl)
	}
	t.writeTo(&b)

	return b.String()
}
