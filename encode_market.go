package stockfolio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/stockfolio/date"
)

// The price cache file is a single JSON object mapping instrument symbols
// to {date: close} objects. Dates are ISO formatted, keys are sorted by
// the encoder, so the file is stable under repeated encode runs.

// DecodeMarket reads a price cache from r.
func DecodeMarket(r io.Reader) (*Market, error) {
	raw := make(map[string]map[string]float64)
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("cannot read price cache: %w", err)
	}

	m := NewMarket()
	for instrument, closes := range raw {
		series := m.Series(instrument)
		for day, close := range closes {
			on, err := date.Parse(day)
			if err != nil {
				return nil, fmt.Errorf("price cache for %s: %w", instrument, err)
			}
			series.Append(on, close)
		}
	}
	return m, nil
}

// EncodeMarket writes the price cache to w.
func EncodeMarket(w io.Writer, m *Market) error {
	raw := make(map[string]map[string]float64, len(m.series))
	for _, instrument := range m.Instruments() {
		closes := make(map[string]float64)
		for on, close := range m.Series(instrument).Values() {
			closes[on.String()] = close
		}
		raw[instrument] = closes
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(raw)
}
