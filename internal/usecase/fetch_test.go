package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	"MarketMon/internal/domain/models"
)

func resolved(pairs map[string]string) map[string]models.Resolution {
	out := make(map[string]models.Resolution, len(pairs))
	for label, ticker := range pairs {
		out[label] = models.Resolution{Label: label, Ticker: ticker}
	}
	return out
}

func TestFetchPanelFlatShape(t *testing.T) {
	src := &fakeSource{tables: map[string]*models.FieldTable{"SPY": tableWith(100, 101, 102)}}
	f := NewFetcher(src, nil, nil)

	res, err := f.FetchPanel(context.Background(), resolved(map[string]string{"S&P 500": "SPY"}),
		time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2023, 1, 4, 0, 0, 0, 0, time.UTC), true)
	if err != nil {
		t.Fatalf("FetchPanel: %v", err)
	}
	if !res.Prices.HasColumn("S&P 500") {
		t.Fatalf("missing column, got %v", res.Prices.Columns)
	}
	if len(res.Failed) != 0 {
		t.Fatalf("unexpected failed: %v", res.Failed)
	}
}

func TestFetchPanelByTickerShape(t *testing.T) {
	src := &fakeSource{tables: map[string]*models.FieldTable{
		"SPY": tableWith(100, 101),
		"QQQ": tableWith(200, 202),
	}}
	f := NewFetcher(src, nil, nil)

	res, err := f.FetchPanel(context.Background(),
		resolved(map[string]string{"S&P 500": "SPY", "NASDAQ": "QQQ"}),
		time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC), true)
	if err != nil {
		t.Fatalf("FetchPanel: %v", err)
	}
	if res.Prices.NumCols() != 2 {
		t.Fatalf("expected 2 columns, got %v", res.Prices.Columns)
	}
	if got := res.Prices.Column("NASDAQ")[0]; got != 200 {
		t.Fatalf("NASDAQ first close = %v", got)
	}
}

func TestFetchPanelSharedTickerKeepsAllLabels(t *testing.T) {
	src := &fakeSource{tables: map[string]*models.FieldTable{"SPY": tableWith(100, 101)}}
	f := NewFetcher(src, nil, nil)

	res, err := f.FetchPanel(context.Background(),
		resolved(map[string]string{"S&P 500": "SPY", "US Large Cap": "SPY"}),
		time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC), true)
	if err != nil {
		t.Fatalf("FetchPanel: %v", err)
	}
	if len(res.Failed) != 0 {
		t.Fatalf("unexpected failed: %v", res.Failed)
	}
	if res.Prices.NumCols() != 2 {
		t.Fatalf("both labels should get columns, got %v", res.Prices.Columns)
	}
	for _, label := range []string{"S&P 500", "US Large Cap"} {
		if got := res.Prices.Column(label)[0]; got != 100 {
			t.Fatalf("%s first close = %v", label, got)
		}
	}
	if len(src.calls) != 1 || src.calls[0] != "SPY" {
		t.Fatalf("shared ticker should be fetched once, calls = %v", src.calls)
	}
}

func TestFetchPanelFailedLabelsSortedDeduped(t *testing.T) {
	src := &fakeSource{tables: map[string]*models.FieldTable{
		"OK":    tableWith(1, 2),
		"EMPTY": {},
	}}
	f := NewFetcher(src, nil, nil)

	resolutions := resolved(map[string]string{"Good": "OK", "Zeta": "EMPTY"})
	resolutions["Alpha"] = models.Resolution{Label: "Alpha"} // never resolved

	res, err := f.FetchPanel(context.Background(), resolutions,
		time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC), true)
	if err != nil {
		t.Fatalf("FetchPanel: %v", err)
	}
	if len(res.Failed) != 2 || res.Failed[0] != "Alpha" || res.Failed[1] != "Zeta" {
		t.Fatalf("failed = %v", res.Failed)
	}
}

func TestFetchPanelFieldPreference(t *testing.T) {
	table := &models.FieldTable{
		Dates: []time.Time{time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)},
		Fields: map[string][]float64{
			models.FieldClose:    {100},
			models.FieldAdjClose: {95},
		},
	}
	src := &fakeSource{tables: map[string]*models.FieldTable{"X": table}}
	f := NewFetcher(src, nil, nil)

	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	adj, err := f.FetchPanel(context.Background(), resolved(map[string]string{"A": "X"}), start, start, true)
	if err != nil {
		t.Fatalf("FetchPanel: %v", err)
	}
	if got := adj.Prices.Column("A")[0]; got != 95 {
		t.Fatalf("adjusted basis should pick adjclose, got %v", got)
	}

	raw, err := f.FetchPanel(context.Background(), resolved(map[string]string{"A": "X"}), start, start, false)
	if err != nil {
		t.Fatalf("FetchPanel: %v", err)
	}
	if got := raw.Prices.Column("A")[0]; got != 100 {
		t.Fatalf("close basis should pick close, got %v", got)
	}
}

func TestFetchPanelDropsNonFinite(t *testing.T) {
	src := &fakeSource{tables: map[string]*models.FieldTable{
		"X": tableWith(100, math.Inf(1), 102),
	}}
	f := NewFetcher(src, nil, nil)

	res, err := f.FetchPanel(context.Background(), resolved(map[string]string{"A": "X"}),
		time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2023, 1, 4, 0, 0, 0, 0, time.UTC), true)
	if err != nil {
		t.Fatalf("FetchPanel: %v", err)
	}
	if res.Prices.NumRows() != 2 {
		t.Fatalf("non-finite observation should be dropped, rows = %d", res.Prices.NumRows())
	}
}
