package models

import (
	"math"
	"time"
)

// Price field names used by vendors, in the order clients populate them.
const (
	FieldClose    = "close"
	FieldAdjClose = "adjclose"
)

// FieldTable is a date-indexed table of named price fields for one ticker.
// Field slices are parallel to Dates; NaN marks a missing cell.
type FieldTable struct {
	Dates  []time.Time
	Fields map[string][]float64
}

// Empty reports whether the table has no rows.
func (t *FieldTable) Empty() bool { return t == nil || len(t.Dates) == 0 }

// Series extracts the first available of the given fields as a clean series:
// non-finite and missing entries are dropped. ok is false when none of the
// fields is present.
func (t *FieldTable) Series(fields ...string) (Series, bool) {
	if t.Empty() {
		return Series{}, false
	}
	for _, f := range fields {
		vals, present := t.Fields[f]
		if !present {
			continue
		}
		out := Series{}
		for i, v := range vals {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				continue
			}
			out.Dates = append(out.Dates, Midnight(t.Dates[i]))
			out.Values = append(out.Values, v)
		}
		return out, true
	}
	return Series{}, false
}

// RawQuotes is a vendor response in one of two shapes: a flat table from a
// single-ticker request, or per-ticker tables from a multi-ticker request.
// Exactly one of the two is set.
type RawQuotes struct {
	Flat       *FieldTable
	FlatTicker string
	ByTicker   map[string]*FieldTable
}

// Table normalizes both shapes to the table for one ticker, or nil.
func (q *RawQuotes) Table(ticker string) *FieldTable {
	if q == nil {
		return nil
	}
	if q.Flat != nil {
		if q.FlatTicker == "" || q.FlatTicker == ticker {
			return q.Flat
		}
		return nil
	}
	return q.ByTicker[ticker]
}

// Empty reports whether the response carries no data at all.
func (q *RawQuotes) Empty() bool {
	if q == nil {
		return true
	}
	if q.Flat != nil {
		return q.Flat.Empty()
	}
	for _, t := range q.ByTicker {
		if !t.Empty() {
			return false
		}
	}
	return true
}

// Bar is one archived daily observation, as routed to the configured backend.
type Bar struct {
	Ticker string    `json:"ticker"`
	Label  string    `json:"label"`
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
}
