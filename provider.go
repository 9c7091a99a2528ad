package stockfolio

import (
	"context"

	"github.com/etnz/stockfolio/date"
	"github.com/google/uuid"
)

// PriceProvider supplies market prices for instruments. Implementations
// are external collaborators (market-data APIs, caches); the engine only
// ever calls through this interface.
type PriceProvider interface {
	// Daily returns the daily closing-price series for the instrument,
	// covering [from, to], ascending by date.
	Daily(ctx context.Context, instrument string, from, to date.Date) (*date.History[float64], error)
	// Latest returns the most recent closing price for the instrument.
	Latest(ctx context.Context, instrument string) (float64, error)
}

// MetadataProvider supplies company metadata for instruments.
type MetadataProvider interface {
	// Name returns the company name for the instrument.
	Name(ctx context.Context, instrument string) (string, error)
}

// Summary is the structured description of one investment handed to a
// QualitativeScorer.
type Summary struct {
	Instrument    string
	CurrentPrice  Money
	AveragePaid   Money   // average price paid per share
	PercentChange float64 // profit relative to paid-in capital, in percent
	YearsHeld     float64 // duration of holding streaks
	InvestedYears float64 // years since the first transaction
	Shares        Quantity
	TotalPaidIn   Money
}

// Score is a qualitative judgement of one investment.
type Score struct {
	ID          uuid.UUID // identifies one scoring run
	Value       int       // 0-100, -1 when the scorer's reply held no score
	Explanation string
}

// Scored reports whether the reply carried a usable score.
func (s Score) Scored() bool { return s.Value >= 0 }

// QualitativeScorer judges an investment from its structured summary.
// It is a black box: the engine supplies the summary and consumes the
// score and explanation, nothing else.
type QualitativeScorer interface {
	Score(ctx context.Context, s Summary) (Score, error)
}
