package fred

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"MarketMon/internal/domain/models"
	drepo "MarketMon/internal/domain/repository"
	icache "MarketMon/internal/service/cache"
	xhttp "MarketMon/pkg/http"
	xlogger "MarketMon/pkg/logger"
	xutil "MarketMon/pkg/util"
)

// Client implements a YieldSource backed by the FRED observations API.
type Client struct {
	baseURL string
	apiKey  string
	client  *xhttp.Client
	cache   icache.BytesCache
	ttl     time.Duration
	logger  *xlogger.Logger
}

// New creates a new FRED YieldSource.
func New(baseURL, apiKey string, timeout, cacheTTL time.Duration, c icache.BytesCache, l *xlogger.Logger) drepo.YieldSource {
	if l == nil {
		l = xlogger.Nop()
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		cache:   c,
		ttl:     cacheTTL,
		logger:  l,
	}
}

// FetchSeries retrieves one yield series per label. Without an API key or
// with an empty code map it returns an empty panel and no error, so yield
// coverage degrades silently when the backing service is unconfigured.
// Per-series failures are skipped.
func (c *Client) FetchSeries(ctx context.Context, labelToCode map[string]string, start, end time.Time) (models.Panel, error) {
	if c.apiKey == "" || len(labelToCode) == 0 {
		return models.NewPanel(), nil
	}

	series := make(map[string]models.Series, len(labelToCode))
	for label, code := range labelToCode {
		s, err := c.fetchOne(ctx, code, start, end)
		if err != nil {
			c.logger.Warn("fred fetch failed",
				xlogger.String("series", code),
				xlogger.Error(err),
			)
			continue
		}
		if s.Empty() {
			continue
		}
		series[label] = s
	}
	return models.PanelFromSeries(series), nil
}

func (c *Client) fetchOne(ctx context.Context, code string, start, end time.Time) (models.Series, error) {
	key := icache.Key("fred", code, xutil.FormatDate(start), xutil.FormatDate(end))
	if c.cache != nil {
		if b, ok, _ := c.cache.GetBytes(key); ok {
			return parseObservations(b)
		}
	}

	var body []byte
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/fred/series/observations", c.baseURL),
		QueryParams: map[string][]string{
			"series_id":         {code},
			"api_key":           {c.apiKey},
			"file_type":         {"json"},
			"observation_start": {xutil.FormatDate(start)},
			"observation_end":   {xutil.FormatDate(end)},
		},
	}, &body)
	if err != nil {
		return models.Series{}, fmt.Errorf("observations %s: %w", code, err)
	}

	s, err := parseObservations(body)
	if err != nil {
		return models.Series{}, fmt.Errorf("observations %s: %w", code, err)
	}
	if c.cache != nil {
		_ = c.cache.SetBytes(key, body, c.ttl)
	}
	return s, nil
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// parseObservations converts the vendor payload into a Series. FRED marks
// missing observations with a "." value; those rows are dropped.
func parseObservations(body []byte) (models.Series, error) {
	var resp observationsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.Series{}, fmt.Errorf("decode observations: %w", err)
	}

	var s models.Series
	for _, obs := range resp.Observations {
		if obs.Value == "." || obs.Value == "" {
			continue
		}
		d, err := xutil.ParseDate(obs.Date)
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(obs.Value, 64)
		if err != nil {
			continue
		}
		s.Dates = append(s.Dates, d)
		s.Values = append(s.Values, v)
	}
	return s, nil
}
