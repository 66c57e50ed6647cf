package repository

import (
	"context"
	"time"

	"MarketMon/internal/domain/models"
)

// PriceSource fetches daily price bars for one or more tickers. The response
// shape depends on how many tickers were requested; callers normalize it via
// RawQuotes.Table.
type PriceSource interface {
	FetchDaily(ctx context.Context, tickers []string, start, end time.Time) (*models.RawQuotes, error)
}

// YieldSource fetches macro yield series keyed by vendor series codes.
// Implementations return an empty panel, not an error, when no credential is
// configured.
type YieldSource interface {
	FetchSeries(ctx context.Context, labelToCode map[string]string, start, end time.Time) (models.Panel, error)
}

// BarSink archives fetched daily bars to the configured backend.
type BarSink interface {
	StoreBatch(ctx context.Context, bars []models.Bar) error
	Close() error
}

// Metrics records operational counters for fetching and computation.
type Metrics interface {
	RecordFetch(source string, ok bool)
	RecordProbe(ticker string)
	RecordFailedLabels(n int)
	RecordLatency(op string, seconds float64)
	RecordPanelSize(rows, cols int)
}
