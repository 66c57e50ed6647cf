package usecase

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"MarketMon/internal/domain/models"
)

// SummaryCSV renders performance rows as CSV with two-decimal statistics.
func SummaryCSV(rows []models.PerformanceRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"Asset", "Total Return %", "Annualized Return %", "Volatility %", "Max Drawdown %", "Best Day %", "Worst Day %"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec := []string{
			r.Label,
			cell(r.TotalReturn),
			cell(r.AnnualizedReturn),
			cell(r.Volatility),
			cell(r.MaxDrawdown),
			cell(r.BestDay),
			cell(r.WorstDay),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// PanelCSV renders a panel as CSV with a Date column followed by one column
// per asset. Missing cells render empty.
func PanelCSV(p models.Panel) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := append([]string{"Date"}, p.Columns...)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, d := range p.Dates {
		rec := make([]string, 0, len(header))
		rec = append(rec, d.Format("2006-01-02"))
		for _, col := range p.Columns {
			rec = append(rec, cell(p.Column(col)[i]))
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func cell(v float64) string {
	if models.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
