package usecase

import (
	"strings"
	"testing"
	"time"

	"MarketMon/internal/domain/models"
	"MarketMon/pkg/config"
)

func reportFixture() (*ReportBuilder, *models.MonitorResult) {
	universe := config.Universe{
		"EU SECTORS": {"EU Banks": {"EXV1.DE"}, "EU Tech": {"EXV3.DE"}},
		"US SECTORS": {"US Tech": {"XLK"}, "US Energy": {"XLE"}},
	}
	b := NewReportBuilder(universe, SlopeSpec{Name: "US 2s10s (bps)", Long: "US 10Y", Short: "US 2Y"})

	result := &models.MonitorResult{
		Summary: []models.PerformanceRow{
			{Label: "EU Banks", TotalReturn: 5.1},
			{Label: "EU Tech", TotalReturn: -2.3},
			{Label: "US Tech", TotalReturn: 7.2},
			{Label: "US Energy", TotalReturn: -4.0},
		},
		Yields: models.Panel{
			Dates:   []time.Time{time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)},
			Columns: []string{"US 2Y", "US 10Y"},
			Values:  map[string][]float64{"US 2Y": {4.20}, "US 10Y": {3.50}},
		},
	}
	return b, result
}

func TestReportEnglish(t *testing.T) {
	b, result := reportFixture()
	md := b.Build(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), result, StyleEnglish)

	if !strings.HasPrefix(md, "# Global Market Monitor Report") {
		t.Fatalf("unexpected title: %q", md[:40])
	}
	if !strings.Contains(md, "**EU Banks**") {
		t.Fatal("EU sector leader missing")
	}
	if !strings.Contains(md, "**US Energy**") {
		t.Fatal("US sector laggard missing")
	}
	if !strings.Contains(md, "US 2s10s closed at -70.0 bps") {
		t.Fatalf("slope text missing:\n%s", md)
	}
	// fixed section order
	fixed := []string{"## EUROPEAN MARKETS", "## US MARKETS", "## FIXED INCOME MARKETS", "## PERFORMANCE SUMMARY"}
	last := -1
	for _, h := range fixed {
		idx := strings.Index(md, h)
		if idx < 0 || idx < last {
			t.Fatalf("section %q out of order", h)
		}
		last = idx
	}
}

func TestReportSpanish(t *testing.T) {
	b, result := reportFixture()
	md := b.Build(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), result, StyleSpanish)

	if !strings.HasPrefix(md, "# Informe Global Market Monitor") {
		t.Fatalf("unexpected title: %q", md[:40])
	}
	if !strings.Contains(md, "cerró en -70.0 pb") {
		t.Fatal("slope text missing")
	}
}

func TestReportMissingGroups(t *testing.T) {
	b := NewReportBuilder(config.Universe{}, SlopeSpec{Long: "US 10Y", Short: "US 2Y"})
	md := b.Build(time.Now(), time.Now(), &models.MonitorResult{Yields: models.NewPanel()}, StyleEnglish)

	if !strings.Contains(md, "**N/A**") {
		t.Fatal("missing groups should render N/A")
	}
	if !strings.Contains(md, "2s10s slope unavailable") {
		t.Fatal("missing slope should render unavailable text")
	}
}
