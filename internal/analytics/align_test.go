package analytics

import (
	"math"
	"testing"
	"time"

	"MarketMon/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBusinessDaysSkipWeekends(t *testing.T) {
	// Mon 2023-01-02 .. Mon 2023-01-09
	got := BusinessDays(day(2023, 1, 2), day(2023, 1, 9))
	want := []time.Time{
		day(2023, 1, 2), day(2023, 1, 3), day(2023, 1, 4),
		day(2023, 1, 5), day(2023, 1, 6), day(2023, 1, 9),
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d dates, got %d", len(want), len(got))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("date %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestCalendarDaysInclusive(t *testing.T) {
	got := CalendarDays(day(2023, 1, 6), day(2023, 1, 9))
	if len(got) != 4 {
		t.Fatalf("expected 4 dates, got %d", len(got))
	}
}

func TestBusinessDaysEmptyWindow(t *testing.T) {
	if got := BusinessDays(day(2023, 1, 9), day(2023, 1, 2)); got != nil {
		t.Fatalf("expected nil for inverted window, got %v", got)
	}
}

func TestAlignPanelIndexEqualsGrid(t *testing.T) {
	p := models.PanelFromSeries(map[string]models.Series{
		"X": {
			Dates:  []time.Time{day(2023, 1, 3), day(2023, 1, 5)},
			Values: []float64{10, 11},
		},
	})
	aligned := AlignPanel(p, day(2023, 1, 2), day(2023, 1, 9), false, BusinessCalendar)
	grid := BusinessDays(day(2023, 1, 2), day(2023, 1, 9))
	if len(aligned.Dates) != len(grid) {
		t.Fatalf("expected grid of %d dates, got %d", len(grid), len(aligned.Dates))
	}
	for i := range grid {
		if !aligned.Dates[i].Equal(grid[i]) {
			t.Fatalf("grid mismatch at %d", i)
		}
	}
}

func TestAlignPanelForwardFill(t *testing.T) {
	p := models.PanelFromSeries(map[string]models.Series{
		"X": {
			Dates:  []time.Time{day(2023, 1, 3), day(2023, 1, 5)},
			Values: []float64{10, 11},
		},
	})
	aligned := AlignPanel(p, day(2023, 1, 2), day(2023, 1, 6), true, BusinessCalendar)
	col := aligned.Column("X")
	// Jan 2 precedes the first observation and must stay missing.
	if !math.IsNaN(col[0]) {
		t.Fatalf("expected leading gap to stay missing, got %v", col[0])
	}
	// Jan 4 has no source observation and must be filled from Jan 3.
	if col[1] != 10 || col[2] != 10 {
		t.Fatalf("expected forward fill from Jan 3, got %v %v", col[1], col[2])
	}
	if col[3] != 11 || col[4] != 11 {
		t.Fatalf("expected Jan 5 value carried to Jan 6, got %v %v", col[3], col[4])
	}
}

func TestAlignPanelNoFillKeepsGaps(t *testing.T) {
	p := models.PanelFromSeries(map[string]models.Series{
		"X": {
			Dates:  []time.Time{day(2023, 1, 3), day(2023, 1, 5)},
			Values: []float64{10, 11},
		},
	})
	aligned := AlignPanel(p, day(2023, 1, 2), day(2023, 1, 6), false, BusinessCalendar)
	col := aligned.Column("X")
	if !math.IsNaN(col[2]) {
		t.Fatalf("expected Jan 4 missing without fill, got %v", col[2])
	}
}

func TestAlignPanelEmptyIdentity(t *testing.T) {
	p := models.NewPanel()
	aligned := AlignPanel(p, day(2023, 1, 2), day(2023, 1, 6), true, BusinessCalendar)
	if !aligned.Empty() {
		t.Fatalf("expected empty panel to pass through")
	}
}
