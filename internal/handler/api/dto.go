package api

import (
	"MarketMon/internal/domain/models"
)

// JSON-safe views of the result tables. encoding/json cannot represent NaN,
// so missing cells become null pointers here.

type PanelDTO struct {
	Dates   []string              `json:"dates"`
	Columns []string              `json:"columns"`
	Values  map[string][]*float64 `json:"values"`
}

type SummaryRowDTO struct {
	Label            string   `json:"label"`
	TotalReturn      *float64 `json:"total_return_pct"`
	AnnualizedReturn *float64 `json:"annualized_return_pct"`
	Volatility       *float64 `json:"volatility_pct"`
	MaxDrawdown      *float64 `json:"max_drawdown_pct"`
	BestDay          *float64 `json:"best_day_pct"`
	WorstDay         *float64 `json:"worst_day_pct"`
}

type CorrelationDTO struct {
	Labels []string     `json:"labels"`
	Matrix [][]*float64 `json:"matrix"`
}

type MonitorResultDTO struct {
	Prices      PanelDTO                     `json:"prices"`
	Normalized  PanelDTO                     `json:"normalized"`
	Returns     PanelDTO                     `json:"returns"`
	Drawdowns   PanelDTO                     `json:"drawdowns"`
	RollingVol  PanelDTO                     `json:"rolling_vol"`
	Summary     []SummaryRowDTO              `json:"summary"`
	Correlation CorrelationDTO               `json:"correlation"`
	Spreads     []models.SpreadProxy         `json:"spreads"`
	Yields      PanelDTO                     `json:"yields"`
	Failed      []string                     `json:"failed"`
	Resolutions map[string]models.Resolution `json:"resolutions"`
}

func toResultDTO(r *models.MonitorResult) MonitorResultDTO {
	return MonitorResultDTO{
		Prices:      toPanelDTO(r.Prices),
		Normalized:  toPanelDTO(r.Normalized),
		Returns:     toPanelDTO(r.Returns),
		Drawdowns:   toPanelDTO(r.Drawdowns),
		RollingVol:  toPanelDTO(r.RollingVol),
		Summary:     toSummaryDTO(r.Summary),
		Correlation: toCorrelationDTO(r.Correlation),
		Spreads:     r.Spreads,
		Yields:      toPanelDTO(r.Yields),
		Failed:      r.Failed,
		Resolutions: r.Resolutions,
	}
}

func toPanelDTO(p models.Panel) PanelDTO {
	dto := PanelDTO{
		Dates:   make([]string, 0, p.NumRows()),
		Columns: p.Columns,
		Values:  make(map[string][]*float64, p.NumCols()),
	}
	for _, d := range p.Dates {
		dto.Dates = append(dto.Dates, d.Format("2006-01-02"))
	}
	for _, col := range p.Columns {
		dto.Values[col] = nullable(p.Column(col))
	}
	return dto
}

func toSummaryDTO(rows []models.PerformanceRow) []SummaryRowDTO {
	out := make([]SummaryRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, SummaryRowDTO{
			Label:            r.Label,
			TotalReturn:      finite(r.TotalReturn),
			AnnualizedReturn: finite(r.AnnualizedReturn),
			Volatility:       finite(r.Volatility),
			MaxDrawdown:      finite(r.MaxDrawdown),
			BestDay:          finite(r.BestDay),
			WorstDay:         finite(r.WorstDay),
		})
	}
	return out
}

func toCorrelationDTO(c models.Correlation) CorrelationDTO {
	dto := CorrelationDTO{Labels: c.Labels, Matrix: make([][]*float64, 0, len(c.Matrix))}
	for _, row := range c.Matrix {
		dto.Matrix = append(dto.Matrix, nullable(row))
	}
	return dto
}

func nullable(vals []float64) []*float64 {
	out := make([]*float64, len(vals))
	for i, v := range vals {
		out[i] = finite(v)
	}
	return out
}

func finite(v float64) *float64 {
	if models.IsMissing(v) {
		return nil
	}
	return &v
}
