package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"MarketMon/internal/domain/models"
	drepo "MarketMon/internal/domain/repository"
	applogger "MarketMon/pkg/logger"
)

// Fetcher turns resolved identifiers into a wide daily price panel.
type Fetcher struct {
	source  drepo.PriceSource
	metrics drepo.Metrics
	logger  *applogger.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(source drepo.PriceSource, metrics drepo.Metrics, l *applogger.Logger) *Fetcher {
	if l == nil {
		l = applogger.Nop()
	}
	return &Fetcher{source: source, metrics: metrics, logger: l}
}

// FetchPanel downloads daily bars for every resolved label and assembles a
// panel keyed by label. preferAdjusted controls the field preference order.
// Labels that never resolved, or resolved but produced no usable series, end
// up in the sorted de-duplicated Failed list. Dates come out ascending no
// matter what order fetches complete in.
func (f *Fetcher) FetchPanel(ctx context.Context, resolutions map[string]models.Resolution, start, end time.Time, preferAdjusted bool) (models.PriceFetchResult, error) {
	failed := make(map[string]struct{})
	// Several labels can legitimately share a ticker, so the reverse
	// mapping has to fan out to all of them.
	tickerToLabels := make(map[string][]string, len(resolutions))
	var tickers []string
	for label, res := range resolutions {
		if !res.Resolved() {
			failed[label] = struct{}{}
			continue
		}
		if _, seen := tickerToLabels[res.Ticker]; !seen {
			tickers = append(tickers, res.Ticker)
		}
		tickerToLabels[res.Ticker] = append(tickerToLabels[res.Ticker], label)
	}
	sort.Strings(tickers)

	series := make(map[string]models.Series, len(tickers))
	if len(tickers) > 0 {
		quotes, err := f.source.FetchDaily(ctx, tickers, start, end)
		if err != nil {
			if f.metrics != nil {
				f.metrics.RecordFetch("prices", false)
			}
			return models.PriceFetchResult{}, fmt.Errorf("fetch daily bars: %w", err)
		}
		if f.metrics != nil {
			f.metrics.RecordFetch("prices", true)
		}

		fields := fieldOrder(preferAdjusted)
		for _, ticker := range tickers {
			s, ok := quotes.Table(ticker).Series(fields...)
			for _, label := range tickerToLabels[ticker] {
				if !ok || s.Empty() {
					f.logger.Warn("no usable series",
						applogger.String("label", label),
						applogger.String("ticker", ticker),
					)
					failed[label] = struct{}{}
					continue
				}
				series[label] = s
			}
		}
	}

	result := models.PriceFetchResult{
		Prices: models.PanelFromSeries(series),
		Failed: sortedKeys(failed),
	}
	if f.metrics != nil {
		f.metrics.RecordFailedLabels(len(result.Failed))
		f.metrics.RecordPanelSize(result.Prices.NumRows(), result.Prices.NumCols())
	}
	return result, nil
}

func fieldOrder(preferAdjusted bool) []string {
	if preferAdjusted {
		return []string{models.FieldAdjClose, models.FieldClose}
	}
	return []string{models.FieldClose, models.FieldAdjClose}
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
