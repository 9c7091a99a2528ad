// Package stockfolio reconstructs a holder's stock portfolio state from a
// ledger of buy/sell transactions and externally supplied daily closing
// prices.
//
// The core is the holdings time-series builder: a merge-walk of the
// normalized transaction ledger against a daily price series that produces,
// for every trading day, the cumulative shares held, the capital paid in,
// and the resulting market value. On top of it, the aggregate valuator sums
// per-instrument snapshots into portfolio totals.
//
// Market data, company metadata and qualitative scoring are consumed through
// capability interfaces (PriceProvider, MetadataProvider, QualitativeScorer)
// so the engine stays deterministic and testable.
package stockfolio
