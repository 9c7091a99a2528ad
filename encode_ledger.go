package stockfolio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeLedger reads raw transaction records from r (a JSON array of
// objects, the transaction source's export format) and normalizes them
// into a Ledger.
//
// A partially readable file returns both the ledger of clean records and
// the joined MalformedRecordError values for the rest.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	var records []Record
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("cannot read transaction records: %w", err)
	}
	return Normalize(records)
}

// ledgerRecord is the canonical encoding of a normalized transaction.
type ledgerRecord struct {
	Ticker   string   `json:"Ticker Symbol"`
	Date     string   `json:"Date"`
	Type     string   `json:"Transaction Type"`
	Shares   Quantity `json:"No. of Shares"`
	Gross    Money    `json:"Transaction Valuation USD"`
	UnitCost Money    `json:"Average Cost per Share USD"`
}

// EncodeLedger writes the ledger to w in its canonical form: one JSON
// array, grouped by instrument (sorted), chronological within each group,
// dates in ISO form and amounts without decoration.
func EncodeLedger(w io.Writer, l *Ledger) error {
	records := make([]ledgerRecord, 0, l.Len())
	for instrument := range l.Instruments() {
		for _, tx := range l.Transactions(instrument) {
			records = append(records, ledgerRecord{
				Ticker:   tx.Instrument,
				Date:     tx.On.String(),
				Type:     tx.Action.String(),
				Shares:   tx.Quantity,
				Gross:    tx.Gross,
				UnitCost: tx.UnitCost(),
			})
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
