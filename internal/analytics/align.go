package analytics

import (
	"math"
	"time"

	"MarketMon/internal/domain/models"
)

// Calendar selects the date grid frequency for alignment.
type Calendar string

const (
	BusinessCalendar Calendar = "business"
	DailyCalendar    Calendar = "calendar"
)

// BusinessDays returns every weekday in [start, end] inclusive.
func BusinessDays(start, end time.Time) []time.Time {
	return dateRange(start, end, func(t time.Time) bool {
		wd := t.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	})
}

// CalendarDays returns every day in [start, end] inclusive.
func CalendarDays(start, end time.Time) []time.Time {
	return dateRange(start, end, func(time.Time) bool { return true })
}

func dateRange(start, end time.Time, keep func(time.Time) bool) []time.Time {
	start, end = models.Midnight(start), models.Midnight(end)
	if end.Before(start) {
		return nil
	}
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

// Grid builds the target date grid for the chosen calendar.
func Grid(start, end time.Time, cal Calendar) []time.Time {
	if cal == DailyCalendar {
		return CalendarDays(start, end)
	}
	return BusinessDays(start, end)
}

// AlignPanel reindexes every column of p onto the [start, end] grid at the
// chosen frequency. Cells with no source observation become missing. When
// forwardFill is set, gaps are filled column-wise from the last prior
// observation; cells before a column's first observation stay missing.
// An empty panel passes through unchanged.
func AlignPanel(p models.Panel, start, end time.Time, forwardFill bool, cal Calendar) models.Panel {
	if p.Empty() {
		return p
	}

	grid := Grid(start, end, cal)
	out := models.Panel{
		Dates:   grid,
		Columns: append([]string(nil), p.Columns...),
		Values:  make(map[string][]float64, len(p.Columns)),
	}

	pos := make(map[time.Time]int, len(p.Dates))
	for i, d := range p.Dates {
		pos[d] = i
	}

	for _, label := range p.Columns {
		src := p.Values[label]
		col := make([]float64, len(grid))
		for i, d := range grid {
			if j, ok := pos[d]; ok {
				col[i] = src[j]
			} else {
				col[i] = math.NaN()
			}
		}
		if forwardFill {
			last := math.NaN()
			for i, v := range col {
				if !math.IsNaN(v) {
					last = v
				} else if !math.IsNaN(last) {
					col[i] = last
				}
			}
		}
		out.Values[label] = col
	}
	return out
}
