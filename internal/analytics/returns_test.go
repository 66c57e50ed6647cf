package analytics

import (
	"math"
	"testing"
	"time"

	"MarketMon/internal/domain/models"
)

func pricePanel(label string, prices []float64) models.Panel {
	s := models.Series{Values: prices}
	for i := range prices {
		s.Dates = append(s.Dates, day(2023, 1, 2).AddDate(0, 0, i))
	}
	return models.PanelFromSeries(map[string]models.Series{label: s})
}

func TestComputeReturnsConstantPrice(t *testing.T) {
	p := pricePanel("X", []float64{50, 50, 50, 50})
	r := ComputeReturns(p)
	// first row is all-missing and dropped
	if r.NumRows() != 3 {
		t.Fatalf("expected 3 return rows, got %d", r.NumRows())
	}
	for _, v := range r.Column("X") {
		if v != 0 {
			t.Fatalf("expected zero return, got %v", v)
		}
	}
}

func TestComputeReturnsInfinityBecomesMissing(t *testing.T) {
	p := pricePanel("X", []float64{0, 5})
	r := ComputeReturns(p)
	if r.NumRows() != 0 {
		t.Fatalf("expected division artifact row dropped, got %d rows", r.NumRows())
	}
}

func TestComputeReturnsKeepsPartialRows(t *testing.T) {
	a := models.Series{
		Dates:  []time.Time{day(2023, 1, 2), day(2023, 1, 3), day(2023, 1, 4)},
		Values: []float64{10, 11, 12},
	}
	b := models.Series{
		Dates:  []time.Time{day(2023, 1, 2), day(2023, 1, 3)},
		Values: []float64{20, 22},
	}
	p := models.PanelFromSeries(map[string]models.Series{"A": a, "B": b})
	r := ComputeReturns(p)
	if r.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", r.NumRows())
	}
	// Jan 4 keeps A's return while B is missing.
	if math.IsNaN(r.Column("A")[1]) {
		t.Fatalf("expected valid A return on partial row")
	}
	if !math.IsNaN(r.Column("B")[1]) {
		t.Fatalf("expected missing B return on partial row")
	}
}

func TestComputeReturnsEmpty(t *testing.T) {
	r := ComputeReturns(models.NewPanel())
	if !r.Empty() {
		t.Fatalf("expected empty returns for empty panel")
	}
}
