package util

import (
	"strings"
	"time"
)

// PreviousMonth returns the year and month for the previous month
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// CurrentYearMonth returns the calendar year and month of t in UTC
func CurrentYearMonth(t time.Time) (int, int) {
	u := t.UTC()
	return u.Year(), int(u.Month())
}

// MonthBounds returns the first and last instant of the given month in UTC.
// Both bounds are inclusive.
func MonthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// InMonth reports whether t falls inside the given month in UTC
func InMonth(t time.Time, year, month int) bool {
	start, end := MonthBounds(year, month)
	return !t.Before(start) && !t.After(end)
}

// TrailingDays returns the window covering the last days UTC calendar days up to
// and including the day of now. Both bounds are inclusive.
func TrailingDays(now time.Time, days int) (time.Time, time.Time) {
	u := now.UTC()
	today := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -(days - 1))
	end := today.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDate parses the date formats commonly found in bank exports.
// Slash dates are read month first.
func ParseDate(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
