package util

import (
	"testing"
	"time"
)

func TestPreviousMonth_SameYear(t *testing.T) {
	tests := []struct {
		year      int
		month     int
		wantYear  int
		wantMonth int
	}{
		{2026, 6, 2026, 5},   // June -> May
		{2026, 12, 2026, 11}, // Dec -> Nov
		{2026, 2, 2026, 1},   // Feb -> Jan
	}

	for _, tt := range tests {
		gotYear, gotMonth := PreviousMonth(tt.year, tt.month)
		if gotYear != tt.wantYear || gotMonth != tt.wantMonth {
			t.Errorf("PreviousMonth(%d, %d) = (%d, %d), want (%d, %d)",
				tt.year, tt.month, gotYear, gotMonth, tt.wantYear, tt.wantMonth)
		}
	}
}

func TestPreviousMonth_YearBoundary(t *testing.T) {
	gotYear, gotMonth := PreviousMonth(2026, 1)
	if gotYear != 2025 || gotMonth != 12 {
		t.Errorf("PreviousMonth(2026, 1) = (%d, %d), want (2025, 12)", gotYear, gotMonth)
	}
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "thirty day month",
			year:      2024,
			month:     6,
			wantStart: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 6, 30, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:      "leap february",
			year:      2024,
			month:     2,
			wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 2, 29, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:      "december",
			year:      2025,
			month:     12,
			wantStart: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 12, 31, 23, 59, 59, 999999999, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := MonthBounds(tt.year, tt.month)
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestInMonth(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"first instant", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), true},
		{"last day evening", time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC), true},
		{"previous month", time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC), false},
		{"next month", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InMonth(tt.t, 2024, 6); got != tt.want {
				t.Errorf("InMonth(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestCurrentYearMonth(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 2024-07-01 05:00 at UTC+10 is still June in UTC
	year, month := CurrentYearMonth(time.Date(2024, 7, 1, 5, 0, 0, 0, loc))
	if year != 2024 || month != 6 {
		t.Errorf("CurrentYearMonth = (%d, %d), want (2024, 6)", year, month)
	}
}

func TestTrailingDays(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	// 2024-03-01 22:00 at UTC-5 is March 2 in UTC
	start, end := TrailingDays(time.Date(2024, 3, 1, 22, 0, 0, 0, loc), 3)

	wantStart := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 3, 2, 23, 59, 59, 999999999, time.UTC)
	if !start.Equal(wantStart) || !end.Equal(wantEnd) {
		t.Errorf("TrailingDays = (%v, %v), want (%v, %v)", start, end, wantStart, wantEnd)
	}

	start, end = TrailingDays(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), 1)
	if start.Format("2006-01-02") != "2024-03-02" || end.Format("2006-01-02") != "2024-03-02" {
		t.Errorf("Single day window = (%v, %v)", start, end)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input  string
		want   time.Time
		wantOK bool
	}{
		{"2024-06-15", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"06/15/2024", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"6/5/2024", time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), true},
		{"2024-06-15T10:30:00Z", time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC), true},
		{"Jun 15, 2024", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"not a date", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseDate(tt.input)
		if ok != tt.wantOK {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
