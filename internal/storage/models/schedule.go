// Package models contains the domain models for the application.
package models

import (
	"time"
)

// ISODate is the calendar-date layout used throughout the schedule domain.
// Dates carry no time component; times of day live in separate HH:MM fields.
const ISODate = "2006-01-02"

// Color palette for schedule records.
const (
	ColorBlue   = "blue"
	ColorRed    = "red"
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorPurple = "purple"
	ColorGray   = "gray"
)

// DefaultColor is applied when a record is created without a color.
const DefaultColor = ColorBlue

// ValidColor reports whether c is one of the fixed palette values.
func ValidColor(c string) bool {
	switch c {
	case ColorBlue, ColorRed, ColorGreen, ColorYellow, ColorPurple, ColorGray:
		return true
	}
	return false
}

// ScheduleRecord is one persisted schedule event, owned by a single user.
// StartDate and EndDate are inclusive ISO dates with StartDate <= EndDate.
// StartTime/EndTime are wall-clock "HH:MM" strings; no ordering between
// them is enforced.
type ScheduleRecord struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Start returns the parsed start date. The zero time is returned for an
// unparseable value; repositories only persist validated dates.
func (r *ScheduleRecord) Start() time.Time {
	t, _ := time.Parse(ISODate, r.StartDate)
	return t
}

// End returns the parsed end date.
func (r *ScheduleRecord) End() time.Time {
	t, _ := time.Parse(ISODate, r.EndDate)
	return t
}

// SpanDays returns the number of days the record covers, inclusive.
// A single-day record spans 1.
func (r *ScheduleRecord) SpanDays() int {
	return int(r.End().Sub(r.Start()).Hours()/24) + 1
}
