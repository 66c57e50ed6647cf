package analytics

import (
	"math"
	"testing"
	"time"

	"MarketMon/internal/domain/models"
)

// Six business days Mon 2023-01-02 .. Mon 2023-01-09.
func sixDayPanel(label string, prices []float64) models.Panel {
	dates := BusinessDays(day(2023, 1, 2), day(2023, 1, 9))
	return models.PanelFromSeries(map[string]models.Series{
		label: {Dates: dates, Values: prices},
	})
}

func TestPerformanceSummaryWorkedExample(t *testing.T) {
	prices := sixDayPanel("X", []float64{100, 101, 99, 102, 103, 104})
	rets := ComputeReturns(prices)
	rows := PerformanceSummary(prices, rets, DefaultConventions())
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	row := rows[0]
	if math.Abs(row.TotalReturn-4.0) > 1e-9 {
		t.Fatalf("expected total return 4.00%%, got %v", row.TotalReturn)
	}
	wantDD := (99.0/101.0 - 1) * 100
	if math.Abs(row.MaxDrawdown-wantDD) > 1e-9 {
		t.Fatalf("expected max drawdown %v, got %v", wantDD, row.MaxDrawdown)
	}
	wantBest := (102.0/99.0 - 1) * 100
	if math.Abs(row.BestDay-wantBest) > 1e-9 {
		t.Fatalf("expected best day %v, got %v", wantBest, row.BestDay)
	}
	// 7 calendar days elapsed
	years := 7.0 / 365.25
	wantAnn := (math.Pow(1.04, 1/years) - 1) * 100
	if math.Abs(row.AnnualizedReturn-wantAnn) > 1e-9 {
		t.Fatalf("expected annualized %v, got %v", wantAnn, row.AnnualizedReturn)
	}
}

func TestPerformanceSummarySingleColumnMatchesClosedForm(t *testing.T) {
	prices := sixDayPanel("X", []float64{50, 51, 52, 53, 54, 55})
	rets := ComputeReturns(prices)
	rows := PerformanceSummary(prices, rets, DefaultConventions())
	want := (55.0/50.0 - 1) * 100
	if math.Abs(rows[0].TotalReturn-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, rows[0].TotalReturn)
	}
}

func TestPerformanceSummarySortedByTotalReturn(t *testing.T) {
	dates := BusinessDays(day(2023, 1, 2), day(2023, 1, 9))
	p := models.PanelFromSeries(map[string]models.Series{
		"Up":   {Dates: dates, Values: []float64{100, 101, 102, 103, 104, 105}},
		"Down": {Dates: dates, Values: []float64{100, 99, 98, 97, 96, 95}},
	})
	rows := PerformanceSummary(p, ComputeReturns(p), DefaultConventions())
	if rows[0].Label != "Up" || rows[1].Label != "Down" {
		t.Fatalf("expected descending total return order, got %v then %v", rows[0].Label, rows[1].Label)
	}
}

func TestPerformanceSummaryEmpty(t *testing.T) {
	if rows := PerformanceSummary(models.NewPanel(), models.NewPanel(), DefaultConventions()); rows != nil {
		t.Fatalf("expected nil summary for empty panels")
	}
}

func TestCorrelationMatrixSymmetricUnitDiagonal(t *testing.T) {
	dates := BusinessDays(day(2023, 1, 2), day(2023, 1, 9))
	p := models.PanelFromSeries(map[string]models.Series{
		"A": {Dates: dates, Values: []float64{100, 101, 99, 102, 103, 104}},
		"B": {Dates: dates, Values: []float64{50, 49, 51, 50, 52, 51}},
	})
	corr := CorrelationMatrix(ComputeReturns(p))
	if corr.Empty() {
		t.Fatalf("expected non-empty matrix")
	}
	for i := range corr.Labels {
		if math.Abs(corr.Matrix[i][i]-1) > 1e-12 {
			t.Fatalf("expected unit diagonal, got %v", corr.Matrix[i][i])
		}
		for j := range corr.Labels {
			if corr.Matrix[i][j] != corr.Matrix[j][i] {
				t.Fatalf("matrix not symmetric at (%d,%d)", i, j)
			}
		}
	}
}

func TestCorrelationMatrixZeroVarianceIsMissing(t *testing.T) {
	dates := BusinessDays(day(2023, 1, 2), day(2023, 1, 9))
	p := models.PanelFromSeries(map[string]models.Series{
		"Const":  {Dates: dates, Values: []float64{100, 100, 100, 100, 100, 100}},
		"Moving": {Dates: dates, Values: []float64{100, 101, 99, 102, 103, 104}},
	})
	corr := CorrelationMatrix(ComputeReturns(p))
	ci := indexOf(corr.Labels, "Const")
	mi := indexOf(corr.Labels, "Moving")
	if !models.IsMissing(corr.Matrix[ci][ci]) {
		t.Fatalf("constant column diagonal should be missing, got %v", corr.Matrix[ci][ci])
	}
	if !models.IsMissing(corr.Matrix[ci][mi]) || !models.IsMissing(corr.Matrix[mi][ci]) {
		t.Fatalf("constant-vs-moving cells should be missing, got %v / %v",
			corr.Matrix[ci][mi], corr.Matrix[mi][ci])
	}
	if math.Abs(corr.Matrix[mi][mi]-1) > 1e-12 {
		t.Fatalf("moving column diagonal = %v", corr.Matrix[mi][mi])
	}
}

func indexOf(labels []string, want string) int {
	for i, l := range labels {
		if l == want {
			return i
		}
	}
	return -1
}

func TestCorrelationMatrixEmpty(t *testing.T) {
	if corr := CorrelationMatrix(models.NewPanel()); !corr.Empty() {
		t.Fatalf("expected empty correlation for empty returns")
	}
}

func TestSpreadProxiesPresentAndAbsent(t *testing.T) {
	summary := []models.PerformanceRow{
		{Label: "US IG Corporate", TotalReturn: 2.5},
		{Label: "US Govt Bonds 7-10Y", TotalReturn: 1.0},
	}
	pairs := []SpreadPair{
		{Name: "US IG Spread Proxy", Long: "US IG Corporate", Short: "US Govt Bonds 7-10Y"},
		{Name: "US HY Spread Proxy", Long: "US HY Corporate", Short: "US Govt Bonds 7-10Y"},
	}
	got := SpreadProxies(summary, pairs)
	if len(got) != 1 {
		t.Fatalf("expected one proxy, got %d", len(got))
	}
	if got[0].Name != "US IG Spread Proxy" || math.Abs(got[0].Value-1.5) > 1e-12 {
		t.Fatalf("unexpected proxy %+v", got[0])
	}
}

func TestSpreadProxiesEmptySummary(t *testing.T) {
	if got := SpreadProxies(nil, []SpreadPair{{Name: "x", Long: "a", Short: "b"}}); got != nil {
		t.Fatalf("expected nil proxies for empty summary")
	}
}

func TestWithSlope(t *testing.T) {
	dates := []time.Time{day(2023, 1, 2), day(2023, 1, 3)}
	yields := models.PanelFromSeries(map[string]models.Series{
		"US 2Y Yield":  {Dates: dates, Values: []float64{4.5, 4.6}},
		"US 10Y Yield": {Dates: dates, Values: []float64{3.9, 4.1}},
	})
	out := WithSlope(yields, "US 2s10s Slope (bps)", "US 10Y Yield", "US 2Y Yield")
	col := out.Column("US 2s10s Slope (bps)")
	if col == nil {
		t.Fatalf("expected slope column")
	}
	if math.Abs(col[0]-(-60)) > 1e-9 || math.Abs(col[1]-(-50)) > 1e-9 {
		t.Fatalf("unexpected slope values %v", col)
	}
}

func TestWithSlopeMissingColumn(t *testing.T) {
	yields := models.PanelFromSeries(map[string]models.Series{
		"US 10Y Yield": {Dates: []time.Time{day(2023, 1, 2)}, Values: []float64{4.0}},
	})
	out := WithSlope(yields, "US 2s10s Slope (bps)", "US 10Y Yield", "US 2Y Yield")
	if out.HasColumn("US 2s10s Slope (bps)") {
		t.Fatalf("expected no slope column when a leg is missing")
	}
}
