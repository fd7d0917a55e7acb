package returns

import (
	"errors"
	"math"
	"testing"
	"time"

	"EventMetrics/internal/model"
)

func day(n int) time.Time {
	return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func series(prices []float64, days []int) []model.PricePoint {
	pts := make([]model.PricePoint, len(prices))
	for i, p := range prices {
		pts[i] = model.PricePoint{Date: day(days[i]), Price: p}
	}
	return pts
}

func TestTransforms(t *testing.T) {
	if got := Simple(100, 110); math.Abs(got-0.10) > 1e-12 {
		t.Errorf("Simple(100,110) = %v, want 0.10", got)
	}
	if got := Log(100, 110); math.Abs(got-math.Log(1.1)) > 1e-12 {
		t.Errorf("Log(100,110) = %v, want ln(1.1)", got)
	}
	// The two transforms must stay distinct: they are not interchangeable.
	if Simple(100, 110) == Log(100, 110) {
		t.Error("Simple and Log agree on a non-trivial pair")
	}
}

func TestAlign_FullOverlap(t *testing.T) {
	subject := series([]float64{100, 101, 102, 103}, []int{0, 1, 2, 3})
	benchmark := series([]float64{50, 51, 52, 53}, []int{0, 1, 2, 3})

	pair, err := Align(subject, benchmark, Simple)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 4 common dates yield 3 paired returns.
	if pair.Len() != 3 {
		t.Fatalf("expected 3 aligned returns, got %d", pair.Len())
	}
	if len(pair.Dates) != 3 || len(pair.Benchmark) != 3 {
		t.Fatal("dates/benchmark lengths out of sync with subject")
	}
	if !pair.Dates[0].Equal(day(1)) {
		t.Errorf("first aligned date = %v, want %v", pair.Dates[0], day(1))
	}
	if math.Abs(pair.Subject[0]-0.01) > 1e-12 {
		t.Errorf("first subject return = %v, want 0.01", pair.Subject[0])
	}
}

func TestAlign_PartialOverlap(t *testing.T) {
	// Subject trades on days 0-4, benchmark misses day 2 (holiday on its
	// exchange). Returns on days 1,3,4 exist for both; day 2 has no
	// benchmark return and day 3's benchmark return spans the gap.
	subject := series([]float64{100, 101, 102, 103, 104}, []int{0, 1, 2, 3, 4})
	benchmark := series([]float64{50, 51, 53, 54}, []int{0, 1, 3, 4})

	pair, err := Align(subject, benchmark, Simple)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.Len() != 3 {
		t.Fatalf("expected 3 aligned returns, got %d", pair.Len())
	}
	for i, want := range []int{1, 3, 4} {
		if !pair.Dates[i].Equal(day(want)) {
			t.Errorf("date[%d] = %v, want %v", i, pair.Dates[i], day(want))
		}
	}
}

func TestAlign_Failures(t *testing.T) {
	tests := []struct {
		name      string
		subject   []model.PricePoint
		benchmark []model.PricePoint
	}{
		{
			name:      "empty subject",
			subject:   nil,
			benchmark: series([]float64{50, 51, 52}, []int{0, 1, 2}),
		},
		{
			name:      "empty benchmark",
			subject:   series([]float64{100, 101, 102}, []int{0, 1, 2}),
			benchmark: nil,
		},
		{
			name:      "single point each",
			subject:   series([]float64{100}, []int{0}),
			benchmark: series([]float64{50}, []int{0}),
		},
		{
			name:      "no common dates",
			subject:   series([]float64{100, 101, 102}, []int{0, 1, 2}),
			benchmark: series([]float64{50, 51, 52}, []int{10, 11, 12}),
		},
		{
			name:      "one common return only",
			subject:   series([]float64{100, 101, 102}, []int{0, 1, 5}),
			benchmark: series([]float64{50, 51, 52}, []int{0, 1, 9}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Align(tt.subject, tt.benchmark, Log)
			if !errors.Is(err, ErrInsufficientData) {
				t.Errorf("expected ErrInsufficientData, got %v", err)
			}
		})
	}
}

func TestAlign_Pure(t *testing.T) {
	subject := series([]float64{100, 101, 102, 103}, []int{0, 1, 2, 3})
	benchmark := series([]float64{50, 51, 52, 53}, []int{0, 1, 2, 3})

	first, err := Align(subject, benchmark, Log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Align(subject, benchmark, Log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range first.Subject {
		if first.Subject[i] != second.Subject[i] || first.Benchmark[i] != second.Benchmark[i] {
			t.Fatalf("align is not deterministic at index %d", i)
		}
	}
}
