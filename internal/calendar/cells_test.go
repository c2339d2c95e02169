package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myturn82/dragonj/internal/storage/models"
)

func TestBuildCellsAnnotations(t *testing.T) {
	grid := BuildMonthGrid(2024, 2, DefaultGridRows) // March 2024
	idx := BuildIndex([]models.ScheduleRecord{
		rec("a", "Regular cleaning", "2024-03-20", "2024-03-20"),
	})
	holidays := map[string]string{"2024-03-29": "Good Friday"}
	today := time.Date(2024, time.March, 20, 10, 30, 0, 0, time.UTC)

	cells := BuildCells(grid, 2, idx, holidays, today, "2024-03-05")
	require.Len(t, cells, DefaultGridRows)

	byDate := make(map[string]Cell)
	for _, row := range cells {
		require.Len(t, row, 7)
		for _, c := range row {
			byDate[c.Date] = c
		}
	}

	assert.True(t, byDate["2024-03-20"].IsToday)
	assert.Len(t, byDate["2024-03-20"].Records, 1)
	assert.True(t, byDate["2024-03-05"].IsSelected)
	assert.Equal(t, "Good Friday", byDate["2024-03-29"].HolidayLabel)

	// Leading cells belong to February, trailing to April.
	assert.False(t, byDate["2024-02-25"].InMonth)
	assert.True(t, byDate["2024-03-01"].InMonth)
	assert.False(t, byDate["2024-04-01"].InMonth)
}

func TestBuildCellsNilHolidays(t *testing.T) {
	grid := BuildMonthGrid(2024, 2, DefaultGridRows)
	cells := BuildCells(grid, 2, Index{}, nil, time.Now(), "")

	for _, row := range cells {
		for _, c := range row {
			assert.Empty(t, c.HolidayLabel)
			assert.Empty(t, c.Records)
		}
	}
}
