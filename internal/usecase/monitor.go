package usecase

import (
	"context"
	"fmt"
	"time"

	"MarketMon/internal/analytics"
	"MarketMon/internal/domain/models"
	drepo "MarketMon/internal/domain/repository"
	"MarketMon/pkg/config"
	applogger "MarketMon/pkg/logger"
	"MarketMon/pkg/util"
)

// MonitorUseCase runs one full monitor session: resolve labels, fetch
// prices and yields, align and derive the analytics tables.
type MonitorUseCase struct {
	resolver *Resolver
	fetcher  *Fetcher
	yields   drepo.YieldSource
	sink     drepo.BarSink
	metrics  drepo.Metrics
	logger   *applogger.Logger
	universe config.Universe
	conv     analytics.Conventions
	pairs    []analytics.SpreadPair
	slope    SlopeSpec
}

// SlopeSpec names the yield curve slope column and its two legs.
type SlopeSpec struct {
	Name  string
	Long  string
	Short string
}

// NewMonitorUseCase wires the session pipeline.
func NewMonitorUseCase(
	resolver *Resolver,
	fetcher *Fetcher,
	yields drepo.YieldSource,
	sink drepo.BarSink,
	metrics drepo.Metrics,
	l *applogger.Logger,
	universe config.Universe,
	conv analytics.Conventions,
	pairs []analytics.SpreadPair,
	slope SlopeSpec,
) *MonitorUseCase {
	if l == nil {
		l = applogger.Nop()
	}
	return &MonitorUseCase{
		resolver: resolver,
		fetcher:  fetcher,
		yields:   yields,
		sink:     sink,
		metrics:  metrics,
		logger:   l,
		universe: universe,
		conv:     conv,
		pairs:    pairs,
		slope:    slope,
	}
}

// Run executes the pipeline for one request. Failures of individual assets
// degrade into Failed entries; only malformed input or a total price-source
// outage surfaces as an error.
func (uc *MonitorUseCase) Run(ctx context.Context, req *models.MonitorRequest) (*models.MonitorResult, error) {
	start, err := util.ParseDate(req.Start)
	if err != nil {
		return nil, fmt.Errorf("parse start: %w", err)
	}
	end, err := util.ParseDate(req.End)
	if err != nil {
		return nil, fmt.Errorf("parse end: %w", err)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("start %s must be before end %s", req.Start, req.End)
	}

	t0 := time.Now()
	candidates := uc.universe.Flatten(req.Categories)
	// yield series resolve against the rates vendor, not the price source
	for label := range uc.universe.Labels(config.YieldsCategory) {
		delete(candidates, label)
	}
	for label, cands := range config.ParseCustomTickers(req.CustomTickers) {
		candidates[label] = cands
	}
	if len(candidates) == 0 {
		uc.logger.Warn("empty universe selection")
	}

	resolutions := uc.resolver.Resolve(ctx, toCandidates(candidates), start, end)

	fetched, err := uc.fetcher.FetchPanel(ctx, resolutions, start, end, req.PreferAdjClose())
	if err != nil {
		return nil, err
	}

	cal := analytics.BusinessCalendar
	if req.Calendar == string(analytics.DailyCalendar) {
		cal = analytics.DailyCalendar
	}
	prices := analytics.AlignPanel(fetched.Prices, start, end, req.FillGaps(), cal)
	returns := analytics.ComputeReturns(prices)
	summary := analytics.PerformanceSummary(prices, returns, uc.conv)

	result := &models.MonitorResult{
		Prices:      prices,
		Normalized:  analytics.NormalizeBase100(prices),
		Returns:     returns,
		Drawdowns:   analytics.DrawdownFromPrices(prices),
		RollingVol:  analytics.RollingVolatility(returns, uc.conv),
		Summary:     summary,
		Correlation: analytics.CorrelationMatrix(returns),
		Yields:      models.NewPanel(),
		Failed:      fetched.Failed,
		Resolutions: resolutions,
	}
	if req.IncludeSpreads {
		result.Spreads = analytics.SpreadProxies(summary, uc.pairs)
	}

	if req.IncludeYields && uc.yields != nil {
		yields, yerr := uc.yields.FetchSeries(ctx, uc.yieldCodes(), start, end)
		if yerr != nil {
			uc.logger.Warn("yield fetch failed", applogger.Error(yerr))
			if uc.metrics != nil {
				uc.metrics.RecordFetch("yields", false)
			}
		} else {
			if uc.metrics != nil {
				uc.metrics.RecordFetch("yields", true)
			}
			yields = analytics.AlignPanel(yields, start, end, req.FillGaps(), cal)
			result.Yields = analytics.WithSlope(yields, uc.slope.Name, uc.slope.Long, uc.slope.Short)
		}
	}

	uc.archive(ctx, result.Prices, resolutions)

	if uc.metrics != nil {
		uc.metrics.RecordLatency("monitor", time.Since(t0).Seconds())
	}
	uc.logger.Info("monitor session complete",
		applogger.Int("assets", result.Prices.NumCols()),
		applogger.Int("rows", result.Prices.NumRows()),
		applogger.Int("failed", len(result.Failed)),
		applogger.Duration("took", time.Since(t0)),
	)
	return result, nil
}

// archive pushes the aligned closes to the configured sink. Failures are
// logged and never affect the session result.
func (uc *MonitorUseCase) archive(ctx context.Context, prices models.Panel, resolutions map[string]models.Resolution) {
	if uc.sink == nil || prices.Empty() {
		return
	}
	bars := make([]models.Bar, 0, prices.NumRows()*prices.NumCols())
	for _, label := range prices.Columns {
		ticker := resolutions[label].Ticker
		col := prices.Column(label)
		for i, d := range prices.Dates {
			if models.IsMissing(col[i]) {
				continue
			}
			bars = append(bars, models.Bar{Ticker: ticker, Label: label, Date: d, Close: col[i]})
		}
	}
	if err := uc.sink.StoreBatch(ctx, bars); err != nil {
		uc.logger.Warn("bar archive failed", applogger.Error(err))
	}
}

func toCandidates(in map[string]config.CandidateList) map[string][]string {
	out := make(map[string][]string, len(in))
	for label, cands := range in {
		out[label] = cands
	}
	return out
}

// yieldCodes maps the universe's yield labels to their vendor series
// identifiers. The first candidate of each label is the series code.
func (uc *MonitorUseCase) yieldCodes() map[string]string {
	labels := uc.universe.Labels(config.YieldsCategory)
	out := make(map[string]string, len(labels))
	for label, cands := range labels {
		if len(cands) > 0 {
			out[label] = cands[0]
		}
	}
	return out
}
