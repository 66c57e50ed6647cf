package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"MarketMon/internal/domain/models"
	drepo "MarketMon/internal/domain/repository"
	icache "MarketMon/internal/service/cache"
	xhttp "MarketMon/pkg/http"
	xlogger "MarketMon/pkg/logger"
	xutil "MarketMon/pkg/util"
)

// Client implements a PriceSource backed by the Yahoo daily chart API.
type Client struct {
	baseURL string
	client  *xhttp.Client
	cache   icache.BytesCache
	ttl     time.Duration
	maxConc int
	logger  *xlogger.Logger
}

// New creates a new Yahoo PriceSource.
func New(baseURL string, timeout, cacheTTL time.Duration, maxConc int, c icache.BytesCache, l *xlogger.Logger) drepo.PriceSource {
	if maxConc <= 0 {
		maxConc = 4
	}
	if l == nil {
		l = xlogger.Nop()
	}
	return &Client{
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		cache:   c,
		ttl:     cacheTTL,
		maxConc: maxConc,
		logger:  l,
	}
}

// FetchDaily retrieves daily bars per ticker. A single-ticker request yields
// the flat shape, a multi-ticker request the per-ticker shape. Individual
// ticker failures are skipped; the error return is reserved for an empty
// request or a total failure.
func (c *Client) FetchDaily(ctx context.Context, tickers []string, start, end time.Time) (*models.RawQuotes, error) {
	if len(tickers) == 0 {
		return &models.RawQuotes{}, nil
	}

	if len(tickers) == 1 {
		table, err := c.fetchOne(ctx, tickers[0], start, end)
		if err != nil {
			return nil, err
		}
		return &models.RawQuotes{Flat: table, FlatTicker: tickers[0]}, nil
	}

	out := &models.RawQuotes{ByTicker: make(map[string]*models.FieldTable, len(tickers))}
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, c.maxConc)
	for _, tk := range tickers {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			table, err := c.fetchOne(ctx, ticker, start, end)
			if err != nil {
				c.logger.Warn("yahoo fetch failed",
					xlogger.String("ticker", ticker),
					xlogger.Error(err),
				)
				return
			}
			mu.Lock()
			out.ByTicker[ticker] = table
			mu.Unlock()
		}(tk)
	}
	wg.Wait()
	return out, nil
}

func (c *Client) fetchOne(ctx context.Context, ticker string, start, end time.Time) (*models.FieldTable, error) {
	key := icache.Key("yahoo", ticker, xutil.FormatDate(start), xutil.FormatDate(end))
	if c.cache != nil {
		if b, ok, _ := c.cache.GetBytes(key); ok {
			return parseChart(b)
		}
	}

	var body []byte
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, ticker),
		QueryParams: map[string][]string{
			"period1":  {fmt.Sprintf("%d", models.Midnight(start).Unix())},
			"period2":  {fmt.Sprintf("%d", models.Midnight(end).AddDate(0, 0, 1).Unix())},
			"interval": {"1d"},
		},
	}, &body)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", ticker, err)
	}

	table, err := parseChart(body)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", ticker, err)
	}
	if c.cache != nil {
		_ = c.cache.SetBytes(key, body, c.ttl)
	}
	return table, nil
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// parseChart converts the vendor payload into a FieldTable; null cells
// become missing values.
func parseChart(body []byte) (*models.FieldTable, error) {
	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("vendor error: %s", resp.Chart.Error.Code)
	}
	if len(resp.Chart.Result) == 0 {
		return &models.FieldTable{}, nil
	}

	res := resp.Chart.Result[0]
	table := &models.FieldTable{Fields: make(map[string][]float64, 2)}
	for _, ts := range res.Timestamp {
		table.Dates = append(table.Dates, models.Midnight(time.Unix(ts, 0).UTC()))
	}
	if len(res.Indicators.Quote) > 0 {
		table.Fields[models.FieldClose] = floats(res.Indicators.Quote[0].Close, len(table.Dates))
	}
	if len(res.Indicators.AdjClose) > 0 {
		table.Fields[models.FieldAdjClose] = floats(res.Indicators.AdjClose[0].AdjClose, len(table.Dates))
	}
	return table, nil
}

func floats(src []*float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i < len(src) && src[i] != nil {
			out[i] = *src[i]
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}
