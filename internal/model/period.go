package model

import (
	"fmt"
	"strings"
	"time"
)

// Period is the cash-flow bucket granularity.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod parses a period name, accepting singular and plural forms.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(s) {
	case "day", "daily":
		return PeriodDay, nil
	case "week", "weekly":
		return PeriodWeek, nil
	case "month", "monthly":
		return PeriodMonth, nil
	default:
		return PeriodMonth, fmt.Errorf("unknown period %q", s)
	}
}

// Start truncates t to the beginning of the period containing it, in UTC.
// Weeks start on Monday.
func (p Period) Start(t time.Time) time.Time {
	t = t.UTC()
	switch p {
	case PeriodDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case PeriodWeek:
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
		return d.AddDate(0, 0, -offset)
	case PeriodMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		panic(fmt.Sprintf("unknown period %q", p))
	}
}

// Next returns the start of the period following the one starting at start.
func (p Period) Next(start time.Time) time.Time {
	switch p {
	case PeriodDay:
		return start.AddDate(0, 0, 1)
	case PeriodWeek:
		return start.AddDate(0, 0, 7)
	case PeriodMonth:
		return start.AddDate(0, 1, 0)
	default:
		panic(fmt.Sprintf("unknown period %q", p))
	}
}

// Label renders a bucket start as a human-readable period identifier.
func (p Period) Label(start time.Time) string {
	switch p {
	case PeriodDay:
		return start.Format("2006-01-02")
	case PeriodWeek:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case PeriodMonth:
		return start.Format("2006-01")
	default:
		panic(fmt.Sprintf("unknown period %q", p))
	}
}
