// Package advisor grades an investment's performance against market
// benchmarks through a generative model. The engine only ever sees the
// resulting score and explanation.
package advisor

import (
	"context"
	"fmt"

	"github.com/etnz/stockfolio"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// The grading scale handed to the model as system instruction. Scores are
// relative to broad benchmarks, not absolute returns.
const gradingPrompt = `Using the following grading criteria provided, evaluate then provide a score for the investment on a scale from 0-100. The goal is to grade the stock investment's performance compared to broader benchmarks (e.g. the S&P 500), sector performance, and market conditions. Use the following grading scale to provide a score and a brief explanation of why the investment falls at that score.

### Grading Scale:
- **0-10**: An investment where the stock has underperformed severely compared to market benchmarks and safer alternatives.
- **10-20**: A poor investment that has underperformed and has shown significant volatility or low returns.
- **20-30**: A below average investment that underperformed slightly or remained stagnant.
- **30-40**: A slightly underperforming investment, growing but at a slower pace than the market average.
- **40-50**: The stock has performed in line with market averages, 7-10% per annum or in line with the S&P 500.
- **50-60**: A slightly above average investment, performing better than market benchmarks but marginally.
- **60-70**: The stock has performed well, exceeding the 10% market benchmark.
- **70-80**: The stock has shown excellent growth in the period invested, retrospectively a great choice.
- **80-90**: The stock has delivered exceptional returns with minimal risk, exceedingly above the benchmark.
- **90-100**: An outstanding, well timed investment that has significantly outperformed expectations.

### Provide an exact integer score from 0-100 and a brief explanation of why the investment falls within that range.`

// Advisor scores investments through the Gemini API. It implements
// stockfolio.QualitativeScorer.
type Advisor struct {
	client *genai.Client
}

// New returns an Advisor backed by the given Gemini client.
func New(client *genai.Client) *Advisor {
	return &Advisor{client: client}
}

// info formats the investment summary the way the model is prompted with it.
func info(s stockfolio.Summary) string {
	return fmt.Sprintf(`Stock Name: %s,
Current Stock Price: %s,
Average Price Paid per Share: %s,
Percentage Change Since Investment: %.2f%%,
Held current amount for: %.2f years,
First Invested (years): %.2f years,
Shares Held: %s shares,
Total Value Invested: %s

Score:`,
		s.Instrument, s.CurrentPrice, s.AveragePaid, s.PercentChange,
		s.YearsHeld, s.InvestedYears, s.Shares, s.TotalPaidIn)
}

// Score grades the investment described by the summary.
func (a *Advisor) Score(ctx context.Context, s stockfolio.Summary) (stockfolio.Score, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: gradingPrompt}}},
	}

	resp, err := a.client.Models.GenerateContent(ctx, model, genai.Text(info(s)), config)
	if err != nil {
		return stockfolio.Score{}, fmt.Errorf("scoring %s failed: %w", s.Instrument, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return stockfolio.Score{}, fmt.Errorf("scoring %s: empty response", s.Instrument)
	}

	value, explanation := parseScore(resp.Candidates[0].Content.Parts[0].Text)
	return stockfolio.Score{
		ID:          uuid.New(),
		Value:       value,
		Explanation: explanation,
	}, nil
}

var _ stockfolio.QualitativeScorer = (*Advisor)(nil)
