package returns

import (
	"errors"
	"math"
	"time"

	"EventMetrics/internal/model"
)

// ErrInsufficientData means two price series share fewer than 2 return
// observations, so a regression over them is undefined.
var ErrInsufficientData = errors.New("insufficient overlapping return data")

// Transform converts one consecutive price pair into a single-period return.
// Log and Simple are kept as distinct named transforms because mixing them
// changes the statistical interpretation of downstream metrics: log returns
// feed the regression, simple returns feed the Sharpe path.
type Transform func(prev, cur float64) float64

// Simple computes p[i]/p[i-1] - 1.
func Simple(prev, cur float64) float64 { return cur/prev - 1 }

// Log computes ln(p[i]/p[i-1]).
func Log(prev, cur float64) float64 { return math.Log(cur / prev) }

// Align converts both price series to returns with the given transform, then
// restricts them to the dates present in both (inner join on calendar day),
// preserving chronological order. Returns are keyed by the later date of each
// consecutive pair, so non-trading gaps inside either series are tolerated.
// Pure function of its inputs.
func Align(subject, benchmark []model.PricePoint, f Transform) (*model.AlignedReturns, error) {
	if len(subject) < 2 || len(benchmark) < 2 {
		return nil, ErrInsufficientData
	}

	bench := make(map[string]float64, len(benchmark)-1)
	for i := 1; i < len(benchmark); i++ {
		bench[dayKey(benchmark[i].Date)] = f(benchmark[i-1].Price, benchmark[i].Price)
	}

	pair := &model.AlignedReturns{}
	for i := 1; i < len(subject); i++ {
		br, ok := bench[dayKey(subject[i].Date)]
		if !ok {
			continue
		}
		pair.Dates = append(pair.Dates, subject[i].Date)
		pair.Subject = append(pair.Subject, f(subject[i-1].Price, subject[i].Price))
		pair.Benchmark = append(pair.Benchmark, br)
	}

	if pair.Len() < 2 {
		return nil, ErrInsufficientData
	}
	return pair, nil
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
