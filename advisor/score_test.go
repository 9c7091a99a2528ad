package advisor

import (
	"testing"

	"github.com/etnz/stockfolio"
	"github.com/stretchr/testify/assert"
)

func TestParseScore(t *testing.T) {
	testCases := []struct {
		name            string
		raw             string
		wantScore       int
		wantExplanation string
	}{
		{
			name:            "labelled score",
			raw:             "Score: 65\nThe stock outperformed the benchmark.",
			wantScore:       65,
			wantExplanation: "The stock outperformed the benchmark.",
		},
		{
			name:            "bare integer",
			raw:             "72 - excellent growth over the holding period",
			wantScore:       72,
			wantExplanation: "- excellent growth over the holding period",
		},
		{
			name:            "hundred",
			raw:             "Score: 100",
			wantScore:       100,
			wantExplanation: "",
		},
		{
			name:            "no score at all",
			raw:             "The reply holds no grade whatsoever.",
			wantScore:       -1,
			wantExplanation: "The reply holds no grade whatsoever.",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score, explanation := parseScore(tc.raw)
			assert.Equal(t, tc.wantScore, score)
			assert.Equal(t, tc.wantExplanation, explanation)
		})
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, `gained \$500 overall`, sanitize("gained $500\noverall"))
	assert.Equal(t, "bold claim", sanitize("**bold** claim"))
}

func TestInfoCarriesSummaryFields(t *testing.T) {
	s := stockfolio.Summary{
		Instrument:    "AAPL",
		CurrentPrice:  stockfolio.M(150.0, stockfolio.USD),
		AveragePaid:   stockfolio.M(100.0, stockfolio.USD),
		PercentChange: 50,
		YearsHeld:     2.5,
		InvestedYears: 3,
		Shares:        stockfolio.Q(10),
		TotalPaidIn:   stockfolio.M(1000.0, stockfolio.USD),
	}
	text := info(s)
	assert.Contains(t, text, "AAPL")
	assert.Contains(t, text, "50.00%")
	assert.Contains(t, text, "2.50 years")
	assert.Contains(t, text, "10 shares")
}
