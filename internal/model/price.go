package model

import "time"

// PricePoint is a single daily closing-price observation.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// AlignedReturns holds a subject and a benchmark return series restricted to
// the dates present in both. Subject and Benchmark always have equal length
// and are index-aligned by date, chronological order.
type AlignedReturns struct {
	Dates     []time.Time
	Subject   []float64
	Benchmark []float64
}

func (a *AlignedReturns) Len() int { return len(a.Subject) }
