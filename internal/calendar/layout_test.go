package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myturn82/dragonj/internal/storage/models"
)

func weekFrom(start string) []time.Time {
	day, _ := time.Parse(models.ISODate, start)
	week := make([]time.Time, 7)
	for i := range week {
		week[i] = day
		day = day.AddDate(0, 0, 1)
	}
	return week
}

func TestWeekBarsClipsSpanToRow(t *testing.T) {
	// Record 2024-03-30..2024-04-02 against the week 2024-03-31..2024-04-06:
	// the true start was the prior week, the true end is Tuesday April 2nd.
	week := weekFrom("2024-03-31")
	bars := WeekBars(week, []models.ScheduleRecord{
		rec("a", "Move-out clean", "2024-03-30", "2024-04-02"),
	})

	require.Len(t, bars, 1)
	assert.Equal(t, 0, bars[0].StartCol)
	assert.Equal(t, 2, bars[0].EndCol)
	assert.False(t, bars[0].IsRowStart)
	assert.True(t, bars[0].IsRowEnd)
}

func TestWeekBarsFullyInsideRow(t *testing.T) {
	week := weekFrom("2024-03-31")
	bars := WeekBars(week, []models.ScheduleRecord{
		rec("a", "Office", "2024-04-01", "2024-04-03"),
	})

	require.Len(t, bars, 1)
	assert.Equal(t, 1, bars[0].StartCol)
	assert.Equal(t, 3, bars[0].EndCol)
	assert.True(t, bars[0].IsRowStart)
	assert.True(t, bars[0].IsRowEnd)
}

func TestWeekBarsSpansWholeRow(t *testing.T) {
	week := weekFrom("2024-03-31")
	bars := WeekBars(week, []models.ScheduleRecord{
		rec("a", "Renovation", "2024-03-25", "2024-04-10"),
	})

	require.Len(t, bars, 1)
	assert.Equal(t, 0, bars[0].StartCol)
	assert.Equal(t, 6, bars[0].EndCol)
	assert.False(t, bars[0].IsRowStart)
	assert.False(t, bars[0].IsRowEnd)
}

func TestWeekBarsSkipsNonOverlapping(t *testing.T) {
	week := weekFrom("2024-03-31")
	bars := WeekBars(week, []models.ScheduleRecord{
		rec("before", "Old", "2024-03-01", "2024-03-30"),
		rec("after", "Future", "2024-04-07", "2024-04-08"),
	})

	assert.Empty(t, bars)
}

func TestWeekBarsKeepsRecordOrder(t *testing.T) {
	week := weekFrom("2024-03-31")
	bars := WeekBars(week, []models.ScheduleRecord{
		rec("b", "Second", "2024-04-02", "2024-04-02"),
		rec("a", "First", "2024-04-01", "2024-04-01"),
	})

	require.Len(t, bars, 2)
	assert.Equal(t, "b", bars[0].Record.ID)
	assert.Equal(t, "a", bars[1].Record.ID)
}

func TestGridBarsOneSegmentPerTouchedRow(t *testing.T) {
	grid := BuildMonthGrid(2024, 3, DefaultGridRows) // April 2024
	records := []models.ScheduleRecord{
		rec("a", "Long job", "2024-04-03", "2024-04-16"),
	}

	rows := GridBars(grid, records)
	require.Len(t, rows, DefaultGridRows)

	var segments []Bar
	for _, row := range rows {
		segments = append(segments, row...)
	}
	require.Len(t, segments, 3)

	// Only the first segment rounds left, only the last rounds right.
	assert.True(t, segments[0].IsRowStart)
	assert.False(t, segments[0].IsRowEnd)
	assert.False(t, segments[1].IsRowStart)
	assert.False(t, segments[1].IsRowEnd)
	assert.False(t, segments[2].IsRowStart)
	assert.True(t, segments[2].IsRowEnd)

	// Middle segment occupies its whole row.
	assert.Equal(t, 0, segments[1].StartCol)
	assert.Equal(t, 6, segments[1].EndCol)
}
