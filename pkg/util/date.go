package util

import (
	"fmt"
	"time"
)

// DateFormat is the date-only wire format used throughout the API.
const DateFormat = "2006-01-02"

// ParseDate parses a date-only string into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q want format %q: %w", s, DateFormat, err)
	}
	return t, nil
}

// FormatDate renders t as a date-only string.
func FormatDate(t time.Time) string { return t.Format(DateFormat) }
