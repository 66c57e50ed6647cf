package util

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2023-01-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("02/01/2023"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	day := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	got, err := ParseDate(FormatDate(day))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(day) {
		t.Fatalf("expected %v, got %v", day, got)
	}
}
