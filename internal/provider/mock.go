package provider

import (
	"context"
	"time"

	"EventMetrics/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series map[string][]model.PricePoint // per-symbol canned data
	Errs   map[string]error              // per-symbol forced failures
	Base   float64                       // base price for generated series
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyCloses(_ context.Context, symbol string, start, end time.Time) ([]model.PricePoint, error) {
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if s, ok := m.Series[symbol]; ok {
		return clipRange(s, start, end), nil
	}
	return generateMockCloses(m.Base, start, end), nil
}

func clipRange(points []model.PricePoint, start, end time.Time) []model.PricePoint {
	var out []model.PricePoint
	for _, p := range points {
		if p.Date.Before(start) || p.Date.After(end.AddDate(0, 0, 1)) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// generateMockCloses produces a gently drifting weekday-only series.
func generateMockCloses(basePrice float64, start, end time.Time) []model.PricePoint {
	if basePrice == 0 {
		basePrice = 100
	}
	var points []model.PricePoint
	i := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		points = append(points, model.PricePoint{
			Date:  d,
			Price: basePrice * (1 + float64(i)*0.001),
		})
		i++
	}
	return points
}
