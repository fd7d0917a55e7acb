package spread

import (
	"errors"
	"time"
)

// ErrDealClosed means the expected close date is today or in the past, so an
// annualized carry over the remaining horizon is undefined.
var ErrDealClosed = errors.New("deal close date is not in the future")

// ErrInvalidDealPrice means the deal price is zero or negative.
var ErrInvalidDealPrice = errors.New("deal price must be positive")

// Analysis is the merger-arbitrage view of one position. AnnualizedReturn is
// nil when the spread is not positive: absence signals "no positive-carry
// interpretation", and reports must render it as such, never as zero.
type Analysis struct {
	SpreadPct        float64
	AnnualizedReturn *float64
}

// Analyze computes the arbitrage spread between a deal price and the current
// market price, and the spread annualized over the days remaining to the
// expected close.
func Analyze(currentPrice, dealPrice float64, expectedClose, today time.Time) (Analysis, error) {
	if dealPrice <= 0 {
		return Analysis{}, ErrInvalidDealPrice
	}

	daysToClose := int(expectedClose.Sub(today).Hours() / 24)
	if daysToClose <= 0 {
		return Analysis{}, ErrDealClosed
	}

	spreadPct := (dealPrice - currentPrice) / dealPrice * 100
	a := Analysis{SpreadPct: spreadPct}
	if spreadPct > 0 {
		ann := spreadPct / float64(daysToClose) * 365
		a.AnnualizedReturn = &ann
	}
	return a, nil
}
