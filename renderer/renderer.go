// Package renderer formats reports as markdown. Rendering is the only
// place where monetary values are rounded.
package renderer

import (
	"fmt"
	"io"
	"strings"
)

// table accumulates rows and renders a markdown table with a header line.
type table struct {
	header []string
	rows   [][]string
}

func newTable(header ...string) *table {
	return &table{header: header}
}

func (t *table) row(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) writeTo(w io.Writer) {
	fmt.Fprintf(w, "| %s |\n", strings.Join(t.header, " | "))
	sep := make([]string, len(t.header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintf(w, "|%s|\n", strings.Join(sep, "|"))
	for _, cells := range t.rows {
		fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	}
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
