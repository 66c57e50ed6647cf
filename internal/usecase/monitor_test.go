package usecase

import (
	"context"
	"testing"
	"time"

	"MarketMon/internal/analytics"
	"MarketMon/internal/domain/models"
	"MarketMon/pkg/config"
)

type fakeYields struct{ panel models.Panel }

func (f fakeYields) FetchSeries(ctx context.Context, codes map[string]string, start, end time.Time) (models.Panel, error) {
	return f.panel, nil
}

func newMonitor(src *fakeSource, universe config.Universe) *MonitorUseCase {
	return NewMonitorUseCase(
		NewResolver(src, nil, nil, 45, 2),
		NewFetcher(src, nil, nil),
		fakeYields{panel: models.NewPanel()},
		nil,
		nil,
		nil,
		universe,
		analytics.DefaultConventions(),
		[]analytics.SpreadPair{{Name: "A minus B", Long: "Asset A", Short: "Asset B"}},
		SlopeSpec{Name: "US 2s10s (bps)", Long: "US 10Y", Short: "US 2Y"},
	)
}

func TestMonitorRunEndToEnd(t *testing.T) {
	src := &fakeSource{tables: map[string]*models.FieldTable{
		"AAA": tableWith(100, 101, 99, 102, 103, 104),
		"BBB": tableWith(50, 50.5, 49, 51, 51.5, 52),
	}}
	universe := config.Universe{
		"INDICES": {
			"Asset A": {"AAA"},
			"Asset B": {"BBB"},
		},
	}
	uc := newMonitor(src, universe)

	req := &models.MonitorRequest{Start: "2023-01-02", End: "2023-01-09", Basis: "adjclose", Calendar: "business"}
	res, err := uc.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Prices.NumCols() != 2 {
		t.Fatalf("expected 2 price columns, got %v", res.Prices.Columns)
	}
	if res.Prices.NumRows() != 6 {
		t.Fatalf("expected 6 business days, got %d", res.Prices.NumRows())
	}
	if len(res.Summary) != 2 {
		t.Fatalf("expected 2 summary rows, got %d", len(res.Summary))
	}
	if res.Correlation.Empty() {
		t.Fatal("expected a correlation matrix")
	}
	if !res.Resolutions["Asset A"].Resolved() {
		t.Fatal("Asset A should resolve")
	}
	// dates must come out ascending
	for i := 1; i < len(res.Prices.Dates); i++ {
		if !res.Prices.Dates[i].After(res.Prices.Dates[i-1]) {
			t.Fatalf("dates not ascending at %d: %v", i, res.Prices.Dates)
		}
	}
}

func TestMonitorSpreadsToggle(t *testing.T) {
	src := &fakeSource{tables: map[string]*models.FieldTable{
		"AAA": tableWith(100, 104),
		"BBB": tableWith(100, 102),
	}}
	universe := config.Universe{"INDICES": {"Asset A": {"AAA"}, "Asset B": {"BBB"}}}
	uc := newMonitor(src, universe)

	req := &models.MonitorRequest{Start: "2023-01-02", End: "2023-01-03", IncludeSpreads: true}
	res, err := uc.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Spreads) != 1 || res.Spreads[0].Name != "A minus B" {
		t.Fatalf("spreads = %v", res.Spreads)
	}

	req.IncludeSpreads = false
	res, err = uc.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Spreads) != 0 {
		t.Fatalf("spreads should be off, got %v", res.Spreads)
	}
}

func TestMonitorEmptyUniverse(t *testing.T) {
	uc := newMonitor(&fakeSource{}, config.Universe{})

	req := &models.MonitorRequest{Start: "2023-01-02", End: "2023-01-09"}
	res, err := uc.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("empty universe should degrade, not error: %v", err)
	}
	if !res.Prices.Empty() || len(res.Summary) != 0 {
		t.Fatal("expected empty result")
	}
}

func TestMonitorCustomTickers(t *testing.T) {
	src := &fakeSource{tables: map[string]*models.FieldTable{"ZZZ": tableWith(10, 11)}}
	uc := newMonitor(src, config.Universe{})

	req := &models.MonitorRequest{Start: "2023-01-02", End: "2023-01-03", CustomTickers: "ZZZ"}
	res, err := uc.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Prices.HasColumn("Custom ZZZ") {
		t.Fatalf("expected custom column, got %v", res.Prices.Columns)
	}
}

func TestMonitorRejectsInvertedWindow(t *testing.T) {
	uc := newMonitor(&fakeSource{}, config.Universe{})
	req := &models.MonitorRequest{Start: "2023-02-01", End: "2023-01-01"}
	if _, err := uc.Run(context.Background(), req); err == nil {
		t.Fatal("expected error for start after end")
	}

	same := &models.MonitorRequest{Start: "2023-01-02", End: "2023-01-02"}
	if _, err := uc.Run(context.Background(), same); err == nil {
		t.Fatal("expected error for start equal to end")
	}
}
