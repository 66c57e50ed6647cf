package models

// Resolution is the outcome of probing one label's candidate tickers.
// Ticker is empty when every candidate was exhausted without data.
type Resolution struct {
	Label     string   `json:"label"`
	Ticker    string   `json:"ticker"`
	Attempted []string `json:"attempted"`
}

// Resolved reports whether a working ticker was found.
func (r Resolution) Resolved() bool { return r.Ticker != "" }

// PriceFetchResult is the fetcher output: a wide panel of the labels that
// produced usable data plus a sorted, de-duplicated list of the ones that
// did not.
type PriceFetchResult struct {
	Prices Panel    `json:"prices"`
	Failed []string `json:"failed"`
}

// PerformanceRow is one asset's summary statistics, percentage-scaled.
// NaN cells mean the statistic could not be computed for that asset.
type PerformanceRow struct {
	Label            string  `json:"label"`
	TotalReturn      float64 `json:"total_return_pct"`
	AnnualizedReturn float64 `json:"annualized_return_pct"`
	Volatility       float64 `json:"volatility_pct"`
	MaxDrawdown      float64 `json:"max_drawdown_pct"`
	BestDay          float64 `json:"best_day_pct"`
	WorstDay         float64 `json:"worst_day_pct"`
}

// Correlation is a symmetric matrix of pairwise return correlations.
// Matrix[i][j] corresponds to (Labels[i], Labels[j]).
type Correlation struct {
	Labels []string    `json:"labels"`
	Matrix [][]float64 `json:"matrix"`
}

// Empty reports whether the matrix has no entries.
func (c Correlation) Empty() bool { return len(c.Labels) == 0 }

// SpreadProxy is a named total-return differential between two asset labels,
// standing in for a credit or rate spread.
type SpreadProxy struct {
	Name  string  `json:"name"`
	Value float64 `json:"value_pct"`
}

// MonitorResult carries everything one monitor session computed. Partial
// failures surface in Failed and Resolutions rather than as errors.
type MonitorResult struct {
	Prices      Panel                 `json:"prices"`
	Normalized  Panel                 `json:"normalized"`
	Returns     Panel                 `json:"returns"`
	Drawdowns   Panel                 `json:"drawdowns"`
	RollingVol  Panel                 `json:"rolling_vol"`
	Summary     []PerformanceRow      `json:"summary"`
	Correlation Correlation           `json:"correlation"`
	Spreads     []SpreadProxy         `json:"spreads"`
	Yields      Panel                 `json:"yields"`
	Failed      []string              `json:"failed"`
	Resolutions map[string]Resolution `json:"resolutions"`
}
