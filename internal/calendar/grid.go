// Package calendar implements the scheduling core: month-grid
// construction, per-date event indexing, multi-day bar layout, and
// recurrence expansion. Everything in this package is pure date math
// over the storage models; persistence and rendering live elsewhere.
package calendar

import (
	"time"
)

// Grid row counts. The month view historically shipped in a 5-row and a
// 6-row variant; 5 rows keeps a fixed height but can truncate the final
// week of a month that visually needs a 6th row. DefaultGridRows never
// truncates: every Sunday-start month fits in 6 rows.
const (
	CompactGridRows = 5
	DefaultGridRows = 6
)

// BuildMonthGrid produces the visible date matrix for a month view:
// rows x 7 consecutive calendar days in row-major order, starting on the
// most recent Sunday on or before the 1st of the month. month0 is
// 0-indexed (January = 0), matching the view layer's convention.
//
// Pure function of its inputs; identical inputs yield identical output.
func BuildMonthGrid(year, month0, rows int) [][]time.Time {
	if rows != CompactGridRows {
		rows = DefaultGridRows
	}

	first := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	grid := make([][]time.Time, rows)
	day := start
	for r := 0; r < rows; r++ {
		week := make([]time.Time, 7)
		for c := 0; c < 7; c++ {
			week[c] = day
			day = day.AddDate(0, 0, 1)
		}
		grid[r] = week
	}

	return grid
}

// DateKey formats a grid date as the ISO YYYY-MM-DD key used by the
// event index and the holiday overlay.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SameDay reports whether two times fall on the same calendar date,
// ignoring the time component.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
