package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/stockfolio"
)

// ScoreMarkdown renders an investment summary and its qualitative score.
func ScoreMarkdown(s stockfolio.Summary, score stockfolio.Score) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Investment score for %s\n\n", s.Instrument)

	summaryTable(s).writeTo(&b)
	b.WriteString("\n")

	if score.Scored() {
		fmt.Fprintf(&b, "**Score: %d/100**\n\n", score.Value)
	} else {
		b.WriteString("**Score: unavailable**\n\n")
	}
	if score.Explanation != "" {
		fmt.Fprintf(&b, "%s\n", score.Explanation)
	}
	fmt.Fprintf(&b, "\n_scoring run %s_\n", score.ID)

	return b.String()
}
