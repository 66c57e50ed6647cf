package models

import (
	"math"
	"sort"
	"time"
)

// Missing is the marker stored in panels for absent observations.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v is a missing or otherwise unusable observation.
func IsMissing(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

// Series is a date-ordered sequence of observations for one asset.
// Dates and Values are parallel; dates are unique, ascending, midnight UTC.
type Series struct {
	Dates  []time.Time
	Values []float64
}

// Len returns the number of observations.
func (s Series) Len() int { return len(s.Dates) }

// Empty reports whether the series has no observations.
func (s Series) Empty() bool { return len(s.Dates) == 0 }

// Panel is a wide table of daily observations keyed by (date, asset label).
// All columns share the Dates index; NaN marks a missing cell.
type Panel struct {
	Dates   []time.Time          `json:"dates"`
	Columns []string             `json:"columns"`
	Values  map[string][]float64 `json:"values"`
}

// NewPanel returns an empty panel.
func NewPanel() Panel {
	return Panel{Values: make(map[string][]float64)}
}

// Empty reports whether the panel has no rows or no columns.
func (p Panel) Empty() bool { return len(p.Dates) == 0 || len(p.Columns) == 0 }

// NumRows returns the number of dates.
func (p Panel) NumRows() int { return len(p.Dates) }

// NumCols returns the number of asset columns.
func (p Panel) NumCols() int { return len(p.Columns) }

// Column returns the values of one column, or nil if absent.
func (p Panel) Column(label string) []float64 { return p.Values[label] }

// HasColumn reports whether the panel carries the given label.
func (p Panel) HasColumn(label string) bool {
	_, ok := p.Values[label]
	return ok
}

// Clone returns a deep copy of the panel.
func (p Panel) Clone() Panel {
	out := Panel{
		Dates:   append([]time.Time(nil), p.Dates...),
		Columns: append([]string(nil), p.Columns...),
		Values:  make(map[string][]float64, len(p.Values)),
	}
	for label, vals := range p.Values {
		out.Values[label] = append([]float64(nil), vals...)
	}
	return out
}

// PanelFromSeries assembles a wide panel from per-label series. The date
// index is the sorted union of all series dates; columns are sorted by label.
func PanelFromSeries(series map[string]Series) Panel {
	p := NewPanel()
	if len(series) == 0 {
		return p
	}

	seen := make(map[time.Time]struct{})
	for _, s := range series {
		for _, d := range s.Dates {
			seen[Midnight(d)] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return p
	}
	p.Dates = make([]time.Time, 0, len(seen))
	for d := range seen {
		p.Dates = append(p.Dates, d)
	}
	sort.Slice(p.Dates, func(i, j int) bool { return p.Dates[i].Before(p.Dates[j]) })

	pos := make(map[time.Time]int, len(p.Dates))
	for i, d := range p.Dates {
		pos[d] = i
	}

	p.Columns = make([]string, 0, len(series))
	for label := range series {
		p.Columns = append(p.Columns, label)
	}
	sort.Strings(p.Columns)

	for _, label := range p.Columns {
		s := series[label]
		col := make([]float64, len(p.Dates))
		for i := range col {
			col[i] = math.NaN()
		}
		for i, d := range s.Dates {
			if idx, ok := pos[Midnight(d)]; ok {
				col[idx] = s.Values[i]
			}
		}
		p.Values[label] = col
	}
	return p
}

// Midnight strips the time-of-day and timezone, keeping the calendar date in UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
