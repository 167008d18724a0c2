package model

import (
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in   string
		want Period
		ok   bool
	}{
		{"day", PeriodDay, true},
		{"daily", PeriodDay, true},
		{"Week", PeriodWeek, true},
		{"monthly", PeriodMonth, true},
		{"month", PeriodMonth, true},
		{"year", PeriodMonth, false},
		{"", PeriodMonth, false},
	}
	for _, tt := range tests {
		got, err := ParsePeriod(tt.in)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ParsePeriod(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParsePeriod(%q): expected error", tt.in)
		}
	}
}

func TestPeriodStart(t *testing.T) {
	// Wednesday afternoon.
	ts := time.Date(2026, 3, 11, 15, 45, 30, 0, time.UTC)

	if got := PeriodDay.Start(ts); got != time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC) {
		t.Errorf("day start = %v", got)
	}
	if got := PeriodWeek.Start(ts); got != time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC) {
		t.Errorf("week start = %v, want Monday 2026-03-09", got)
	}
	if got := PeriodMonth.Start(ts); got != time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("month start = %v", got)
	}

	// A Monday is its own week start; a Sunday belongs to the prior Monday.
	monday := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	if got := PeriodWeek.Start(monday); got.Day() != 2 {
		t.Errorf("monday week start = %v", got)
	}
	sunday := time.Date(2026, 3, 8, 8, 0, 0, 0, time.UTC)
	if got := PeriodWeek.Start(sunday); got.Day() != 2 {
		t.Errorf("sunday week start = %v", got)
	}
}

func TestPeriodNext_MonthBoundaries(t *testing.T) {
	dec := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	if got := PeriodMonth.Next(dec); got != time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("next after December = %v", got)
	}
}

func TestPeriodLabel(t *testing.T) {
	ts := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if got := PeriodDay.Label(ts); got != "2026-03-02" {
		t.Errorf("day label = %q", got)
	}
	if got := PeriodWeek.Label(ts); got != "2026-W10" {
		t.Errorf("week label = %q", got)
	}
	if got := PeriodMonth.Label(ts); got != "2026-03" {
		t.Errorf("month label = %q", got)
	}
}
