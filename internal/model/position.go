package model

import "time"

// PositionRequest describes one input row: a holding window for a ticker,
// plus optional deal terms that enable spread analysis. Immutable once parsed.
type PositionRequest struct {
	Company       string
	Ticker        string
	StartDate     time.Time // zero means missing (a batch failure)
	EndDate       time.Time // zero means "use today"
	DealPrice     *float64
	ExpectedClose time.Time // zero means missing
}

// HasDealTerms reports whether the row carries enough data for spread analysis.
func (r *PositionRequest) HasDealTerms() bool {
	return r.DealPrice != nil && !r.ExpectedClose.IsZero()
}

// PositionResult holds the computed metrics for one successfully processed
// position. Spread fields are nil when no deal terms were given or spread
// analysis did not apply; the regression metrics are always populated.
type PositionResult struct {
	Ticker           string
	Alpha            float64
	Beta             float64
	Sharpe           float64
	SpreadPct        *float64
	AnnualizedReturn *float64
}

// Failure records a position excluded from the batch, with a human-readable
// reason suitable for the error log.
type Failure struct {
	Ticker string
	Reason string
}
