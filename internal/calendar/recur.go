package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/myturn82/dragonj/internal/storage/models"
)

// RepeatRule selects how a template is materialized into records.
type RepeatRule string

const (
	RepeatNone    RepeatRule = "none"
	RepeatWeekly  RepeatRule = "weekly"
	RepeatMonthly RepeatRule = "monthly"
)

// OccurrenceCap bounds how many records a repeating template expands
// into. Weekly and monthly rules both emit exactly this many.
const OccurrenceCap = 12

// Template is the transient user input for creating schedule records.
// It is never persisted itself; Expand turns it into concrete records
// before the caller hands them to the record store.
type Template struct {
	Title     string     `json:"title"`
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date"`
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	Color     string     `json:"color"`
	Repeat    RepeatRule `json:"repeat"`
}

// ValidationError reports a rejected template. It is distinguishable
// from infrastructure failures so callers can answer 400 instead of 500
// and skip the persistence step entirely.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks a template before expansion. An end time earlier than
// the start time is accepted as-is; no ordering between times of day is
// enforced.
func (t *Template) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}

	start, err := time.Parse(models.ISODate, t.StartDate)
	if err != nil {
		return &ValidationError{Field: "start_date", Reason: "must be a YYYY-MM-DD date"}
	}
	end, err := time.Parse(models.ISODate, t.EndDate)
	if err != nil {
		return &ValidationError{Field: "end_date", Reason: "must be a YYYY-MM-DD date"}
	}
	if end.Before(start) {
		return &ValidationError{Field: "end_date", Reason: "must not be before start_date"}
	}

	if t.Color != "" && !models.ValidColor(t.Color) {
		return &ValidationError{Field: "color", Reason: "unknown color"}
	}

	switch t.Repeat {
	case "", RepeatNone, RepeatWeekly, RepeatMonthly:
	default:
		return &ValidationError{Field: "repeat", Reason: "must be none, weekly or monthly"}
	}

	return nil
}

// Expand materializes a template into the concrete records to persist.
// It is a pure transform: ids and owner are filled in by the record
// store, and nothing is persisted here.
//
//   - none: one record copying the template.
//   - weekly: OccurrenceCap records, start and end shifted by 7*i days.
//   - monthly: OccurrenceCap records, start shifted by i calendar months
//     with normalization, so a day-of-month past the end of a short month
//     rolls forward (Jan 31 + 1 month = Mar 2 or Mar 3), the same rollover
//     JavaScript Date.setMonth produces in the web client.
//
// Duration in days and the start/end times are preserved per occurrence.
func Expand(tpl Template) ([]models.ScheduleRecord, error) {
	if err := tpl.Validate(); err != nil {
		return nil, err
	}

	start, _ := time.Parse(models.ISODate, tpl.StartDate)
	end, _ := time.Parse(models.ISODate, tpl.EndDate)
	spanDays := int(end.Sub(start).Hours() / 24)

	title := strings.TrimSpace(tpl.Title)
	color := tpl.Color
	if color == "" {
		color = models.DefaultColor
	}

	count := 1
	if tpl.Repeat == RepeatWeekly || tpl.Repeat == RepeatMonthly {
		count = OccurrenceCap
	}

	records := make([]models.ScheduleRecord, 0, count)
	for i := 0; i < count; i++ {
		var occStart time.Time
		switch tpl.Repeat {
		case RepeatWeekly:
			occStart = start.AddDate(0, 0, 7*i)
		case RepeatMonthly:
			occStart = start.AddDate(0, i, 0)
		default:
			occStart = start
		}
		occEnd := occStart.AddDate(0, 0, spanDays)

		records = append(records, models.ScheduleRecord{
			Title:     title,
			StartDate: DateKey(occStart),
			EndDate:   DateKey(occEnd),
			StartTime: tpl.StartTime,
			EndTime:   tpl.EndTime,
			Color:     color,
		})
	}

	return records, nil
}
