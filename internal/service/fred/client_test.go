package fred

import (
	"context"
	"testing"
	"time"
)

func TestParseObservations(t *testing.T) {
	body := []byte(`{
		"observations": [
			{"date": "2023-01-03", "value": "3.79"},
			{"date": "2023-01-04", "value": "."},
			{"date": "2023-01-05", "value": "3.71"}
		]
	}`)

	s, err := parseObservations(body)
	if err != nil {
		t.Fatalf("parseObservations: %v", err)
	}
	if len(s.Dates) != 2 {
		t.Fatalf("expected 2 observations after dropping missing, got %d", len(s.Dates))
	}
	if s.Values[0] != 3.79 || s.Values[1] != 3.71 {
		t.Fatalf("unexpected values: %v", s.Values)
	}
	if got := s.Dates[1].Format("2006-01-02"); got != "2023-01-05" {
		t.Fatalf("unexpected second date %s", got)
	}
}

func TestFetchSeriesWithoutKey(t *testing.T) {
	c := New("http://example.invalid", "", time.Second, time.Minute, nil, nil)

	p, err := c.FetchSeries(context.Background(),
		map[string]string{"US 10Y": "DGS10"},
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("FetchSeries: %v", err)
	}
	if !p.Empty() {
		t.Fatal("expected empty panel without an API key")
	}
}
