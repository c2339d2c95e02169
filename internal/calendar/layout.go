package calendar

import (
	"time"

	"github.com/myturn82/dragonj/internal/storage/models"
)

// Bar describes one rendered segment of a schedule record within a
// single week-row of the month grid. A record spanning multiple weeks
// yields one Bar per row it touches; the view stitches them into a
// visually continuous pill by rounding only the true start and end
// segments (IsRowStart / IsRowEnd).
type Bar struct {
	Record     models.ScheduleRecord `json:"record"`
	StartCol   int                   `json:"start_col"`
	EndCol     int                   `json:"end_col"`
	IsRowStart bool                  `json:"is_row_start"`
	IsRowEnd   bool                  `json:"is_row_end"`
}

// WeekBars computes the bar segments for one week-row (7 consecutive
// dates, Sunday first). Records are considered in their given order and
// bars keep that order; overlapping records stack in the view, no
// packing is performed.
func WeekBars(week []time.Time, records []models.ScheduleRecord) []Bar {
	if len(week) != 7 {
		return nil
	}

	rowStart := week[0]
	rowEnd := week[6]

	var bars []Bar
	for _, rec := range records {
		start := rec.Start()
		end := rec.End()
		if start.IsZero() || end.IsZero() {
			continue
		}

		// Skip records that do not overlap this row.
		if end.Before(rowStart) || start.After(rowEnd) {
			continue
		}

		clippedStart := start
		if clippedStart.Before(rowStart) {
			clippedStart = rowStart
		}
		clippedEnd := end
		if clippedEnd.After(rowEnd) {
			clippedEnd = rowEnd
		}

		bars = append(bars, Bar{
			Record:     rec,
			StartCol:   int(clippedStart.Weekday()),
			EndCol:     int(clippedEnd.Weekday()),
			IsRowStart: SameDay(clippedStart, start),
			IsRowEnd:   SameDay(clippedEnd, end),
		})
	}

	return bars
}

// GridBars computes bar segments for every row of a month grid. The
// records slice should already be deduplicated (one entry per record,
// not the per-day index buckets).
func GridBars(grid [][]time.Time, records []models.ScheduleRecord) [][]Bar {
	rows := make([][]Bar, len(grid))
	for i, week := range grid {
		rows[i] = WeekBars(week, records)
	}
	return rows
}
