package metrics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"EventMetrics/internal/model"
)

// tradingDays is the conventional number of trading days per year, used for
// de-annualizing the risk-free rate and annualizing the Sharpe ratio.
const tradingDays = 252

// ErrDegenerateVariance means a return series has zero variance (flat prices),
// which leaves beta or the Sharpe denominator undefined. It is a distinct,
// reportable failure rather than a silent NaN or infinite slope.
var ErrDegenerateVariance = errors.New("zero-variance return series")

// SharpeConfig selects between the Sharpe conventions found in practice.
// Both knobs are explicit configuration: mixing conventions silently produces
// incomparable numbers across runs.
type SharpeConfig struct {
	Annualize    bool // multiply by sqrt(252)
	ExcessStdDev bool // stdev of excess returns rather than raw returns
}

// Metrics is the full per-position estimate.
type Metrics struct {
	Alpha  float64
	Beta   float64
	Sharpe float64
}

// Regress fits subject returns against benchmark returns by ordinary least
// squares. Beta is the slope, alpha the per-period intercept (daily here,
// matching the granularity of the input returns).
func Regress(pair *model.AlignedReturns) (alpha, beta float64, err error) {
	if stat.Variance(pair.Benchmark, nil) == 0 {
		return 0, 0, fmt.Errorf("benchmark returns: %w", ErrDegenerateVariance)
	}
	alpha, beta = stat.LinearRegression(pair.Benchmark, pair.Subject, nil, false)
	return alpha, beta, nil
}

// Sharpe computes the risk-adjusted return of a daily return series against
// an annual risk-free rate, per cfg.
func Sharpe(rets []float64, riskFreeAnnual float64, cfg SharpeConfig) (float64, error) {
	dailyRF := riskFreeAnnual / tradingDays
	excess := make([]float64, len(rets))
	for i, r := range rets {
		excess[i] = r - dailyRF
	}

	denom := rets
	if cfg.ExcessStdDev {
		denom = excess
	}
	sd := stat.StdDev(denom, nil)
	if sd == 0 || math.IsNaN(sd) {
		return 0, fmt.Errorf("subject returns: %w", ErrDegenerateVariance)
	}

	s := stat.Mean(excess, nil) / sd
	if cfg.Annualize {
		s *= math.Sqrt(tradingDays)
	}
	return s, nil
}

// Estimate combines the regression and Sharpe paths into one per-position
// result. regPair carries log returns for the regression; sharpeRets is the
// subject's simple return series.
func Estimate(regPair *model.AlignedReturns, sharpeRets []float64, riskFreeAnnual float64, cfg SharpeConfig) (Metrics, error) {
	alpha, beta, err := Regress(regPair)
	if err != nil {
		return Metrics{}, err
	}
	sharpe, err := Sharpe(sharpeRets, riskFreeAnnual, cfg)
	if err != nil {
		return Metrics{}, err
	}
	return Metrics{Alpha: alpha, Beta: beta, Sharpe: sharpe}, nil
}
