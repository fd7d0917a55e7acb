package provider

import (
	"context"
	"time"

	"EventMetrics/internal/model"
)

// Fetcher defines the interface for fetching historical price data.
type Fetcher interface {
	// FetchDailyCloses returns one closing price per trading day for symbol
	// over [start, end], in chronological order. Non-trading days are simply
	// absent, never zero-filled. An empty result is an error.
	FetchDailyCloses(ctx context.Context, symbol string, start, end time.Time) ([]model.PricePoint, error)
	Name() string
}
