package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/stockfolio"
)

// HistoryMarkdown renders an instrument's daily snapshot sequence.
func HistoryMarkdown(instrument string, snapshots []stockfolio.DailySnapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s value history\n\n", instrument)
	if len(snapshots) == 0 {
		b.WriteString("No historical data available.\n")
		return b.String()
	}

	last := snapshots[len(snapshots)-1]
	fmt.Fprintf(&b, "- **Shares Held**: %s\n", last.Shares)
	fmt.Fprintf(&b, "- **Value Invested**: %s\n", last.PaidIn)
	fmt.Fprintf(&b, "- **Value of Holdings**: %s\n", last.MarketValue)
	fmt.Fprintf(&b, "- **Held for**: %.2f years\n\n", last.YearsHeld)

	t := newTable("Date", "Price per Share", "Shares Held", "Value Paid", "Value", "Trades")
	for _, s := range snapshots {
		t.row(s.On.String(), s.Price.String(), s.Shares.String(), s.PaidIn.String(), s.MarketValue.String(), fmt.Sprint(s.Trades))
	}
	t.writeTo(&b)

	return b.String()
}
