package calendar

import (
	"time"

	"github.com/myturn82/dragonj/internal/storage/models"
)

// Cell is the annotated render model for one grid position: the date
// plus everything the month view needs to paint it. Derived per render,
// never stored.
type Cell struct {
	Date         string                  `json:"date"`
	Day          int                     `json:"day"`
	InMonth      bool                    `json:"in_month"`
	IsToday      bool                    `json:"is_today"`
	IsSelected   bool                    `json:"is_selected"`
	HolidayLabel string                  `json:"holiday_label,omitempty"`
	Records      []models.ScheduleRecord `json:"records,omitempty"`
}

// BuildCells annotates a month grid with the event index and the
// holiday overlay. month0 is the displayed month (0-indexed); selected
// is an ISO date or empty; holidays maps ISO dates to labels and may be
// nil when the feed was unavailable.
func BuildCells(grid [][]time.Time, month0 int, idx Index, holidays map[string]string, today time.Time, selected string) [][]Cell {
	month := time.Month(month0 + 1)

	cells := make([][]Cell, len(grid))
	for r, week := range grid {
		row := make([]Cell, len(week))
		for c, day := range week {
			key := DateKey(day)
			row[c] = Cell{
				Date:         key,
				Day:          day.Day(),
				InMonth:      day.Month() == month,
				IsToday:      SameDay(day, today),
				IsSelected:   selected != "" && key == selected,
				HolidayLabel: holidays[key],
				Records:      idx.On(key),
			}
		}
		cells[r] = row
	}

	return cells
}
