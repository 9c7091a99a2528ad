package advisor

import (
	"regexp"
	"strconv"
	"strings"
)

// scoreRe matches either "Score: <number>" or a leading bare integer in
// the model's reply. 0-100 only.
var scoreRe = regexp.MustCompile(`(?i)(?:Score:\s*)?\b(100|[1-9]?\d)\b`)

// dollarRe finds unescaped dollar signs; raw '$' in the explanation breaks
// downstream markdown rendering.
var dollarRe = regexp.MustCompile(`(^|[^\\])\$`)

// parseScore extracts the integer score and the explanation text from a
// raw model reply. When no score is found, it returns -1 and the whole
// reply as explanation.
func parseScore(raw string) (int, string) {
	m := scoreRe.FindStringSubmatchIndex(raw)
	if m == nil {
		return -1, sanitize(raw)
	}
	value, err := strconv.Atoi(raw[m[2]:m[3]])
	if err != nil {
		return -1, sanitize(raw)
	}
	return value, sanitize(raw[m[1]:])
}

// sanitize flattens the model's reply into a single plain line.
func sanitize(s string) string {
	s = dollarRe.ReplaceAllString(s, `$1\$$`)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "*", "")
	return strings.TrimSpace(s)
}
