package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"testing"

	"MarketMon/internal/domain/models"
)

// fakeSource serves canned field tables per ticker and records probe order.
type fakeSource struct {
	mu        sync.Mutex
	tables    map[string]*models.FieldTable
	errs      map[string]error
	calls     []string
	lastStart time.Time
}

func (f *fakeSource) FetchDaily(ctx context.Context, tickers []string, start, end time.Time) (*models.RawQuotes, error) {
	f.mu.Lock()
	f.calls = append(f.calls, tickers...)
	f.lastStart = start
	f.mu.Unlock()

	if len(tickers) == 1 {
		if err := f.errs[tickers[0]]; err != nil {
			return nil, err
		}
		return &models.RawQuotes{Flat: f.tables[tickers[0]], FlatTicker: tickers[0]}, nil
	}
	out := &models.RawQuotes{ByTicker: make(map[string]*models.FieldTable)}
	for _, tk := range tickers {
		if f.errs[tk] != nil {
			continue
		}
		if t := f.tables[tk]; t != nil {
			out.ByTicker[tk] = t
		}
	}
	return out, nil
}

func tableWith(closes ...float64) *models.FieldTable {
	t := &models.FieldTable{Fields: map[string][]float64{models.FieldClose: closes}}
	base := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range closes {
		t.Dates = append(t.Dates, base.AddDate(0, 0, i))
	}
	return t
}

func TestResolveFallbackOrder(t *testing.T) {
	src := &fakeSource{
		tables: map[string]*models.FieldTable{
			"BAD2": {},
			"GOOD": tableWith(100, 101),
		},
		errs: map[string]error{"BAD1": fmt.Errorf("vendor error")},
	}
	r := NewResolver(src, nil, nil, 45, 1)

	res := r.Resolve(context.Background(),
		map[string][]string{"Asset": {"BAD1", "BAD2", "GOOD"}},
		time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
	)

	got := res["Asset"]
	if got.Ticker != "GOOD" {
		t.Fatalf("expected GOOD to resolve, got %q", got.Ticker)
	}
	want := []string{"BAD1", "BAD2", "GOOD"}
	if len(got.Attempted) != len(want) {
		t.Fatalf("attempted = %v, want %v", got.Attempted, want)
	}
	for i := range want {
		if got.Attempted[i] != want[i] {
			t.Fatalf("attempted = %v, want %v", got.Attempted, want)
		}
	}
}

func TestResolveExhaustedIsNotAnError(t *testing.T) {
	src := &fakeSource{
		tables: map[string]*models.FieldTable{"EMPTY": {}},
		errs:   map[string]error{"ERR": fmt.Errorf("boom")},
	}
	r := NewResolver(src, nil, nil, 45, 2)

	res := r.Resolve(context.Background(),
		map[string][]string{"Asset": {"ERR", "EMPTY"}},
		time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
	)

	if res["Asset"].Resolved() {
		t.Fatal("exhausted label should not resolve")
	}
	if len(res["Asset"].Attempted) != 2 {
		t.Fatalf("attempted = %v", res["Asset"].Attempted)
	}
}

func TestResolveProbeWindowExtendsBack(t *testing.T) {
	src := &fakeSource{tables: map[string]*models.FieldTable{"T": tableWith(1)}}
	r := NewResolver(src, nil, nil, 45, 1)

	start := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	_ = r.Resolve(context.Background(), map[string][]string{"A": {"T"}}, start, start.AddDate(0, 1, 0))

	if len(src.calls) != 1 || src.calls[0] != "T" {
		t.Fatalf("calls = %v", src.calls)
	}
	if want := start.AddDate(0, 0, -45); !src.lastStart.Equal(want) {
		t.Fatalf("probe start = %s, want %s", src.lastStart, want)
	}
}
