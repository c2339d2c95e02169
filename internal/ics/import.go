// Package ics parses user-supplied iCalendar files into plain dated
// entries for the schedule import flow. Parsing is strictly best-effort:
// event blocks missing a summary or either date are skipped silently,
// and a malformed file yields zero entries rather than an error surfaced
// to the user.
package ics

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
)

// MaxRecurrenceInstances caps how many concrete entries one recurring
// VEVENT may materialize into, mirroring the cap applied to manually
// entered repeating templates.
const MaxRecurrenceInstances = 12

const isoDate = "2006-01-02"

// Entry is one imported calendar event, reduced to the fields the
// schedule domain keeps: a title and an inclusive ISO date range.
type Entry struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Parse reads an iCalendar payload and extracts importable entries.
// VEVENTs carrying an RRULE are expanded into concrete dated entries,
// capped at MaxRecurrenceInstances per event.
func Parse(r io.Reader) ([]Entry, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	var entries []Entry
	for _, ve := range cal.Events() {
		entries = append(entries, eventEntries(ve)...)
	}

	return entries, nil
}

// eventEntries converts one VEVENT into zero or more entries. Returns
// nothing when the summary or either date is missing or unparseable.
func eventEntries(ve *ical.VEvent) []Entry {
	summary := propValue(ve, ical.ComponentPropertySummary)
	if summary == "" {
		return nil
	}

	start, ok := parseCompactDate(propValue(ve, ical.ComponentPropertyDtStart))
	if !ok {
		return nil
	}
	end, ok := parseCompactDate(propValue(ve, ical.ComponentPropertyDtEnd))
	if !ok {
		return nil
	}
	if end.Before(start) {
		return nil
	}
	spanDays := int(end.Sub(start).Hours() / 24)

	rawRule := propValue(ve, ical.ComponentPropertyRrule)
	if rawRule == "" {
		return []Entry{{
			Title:     summary,
			StartDate: start.Format(isoDate),
			EndDate:   end.Format(isoDate),
		}}
	}

	return expandRule(summary, start, spanDays, rawRule)
}

// expandRule materializes a recurring event into dated entries using its
// RRULE, preserving the original span per instance. An unparseable rule
// degrades to the single base entry.
func expandRule(summary string, start time.Time, spanDays int, rawRule string) []Entry {
	rule, err := rrule.StrToRRule(rawRule)
	if err != nil {
		return []Entry{{
			Title:     summary,
			StartDate: start.Format(isoDate),
			EndDate:   start.AddDate(0, 0, spanDays).Format(isoDate),
		}}
	}
	rule.DTStart(start)

	var entries []Entry
	next := rule.Iterator()
	for len(entries) < MaxRecurrenceInstances {
		occ, ok := next()
		if !ok {
			break
		}
		entries = append(entries, Entry{
			Title:     summary,
			StartDate: occ.Format(isoDate),
			EndDate:   occ.AddDate(0, 0, spanDays).Format(isoDate),
		})
	}

	return entries
}

func propValue(ve *ical.VEvent, name ical.ComponentProperty) string {
	if p := ve.GetProperty(name); p != nil {
		return p.Value
	}
	return ""
}

// parseCompactDate normalizes an iCal date or date-time value
// (20240610, 20240610T090000, 20240610T090000Z) to a calendar date.
func parseCompactDate(value string) (time.Time, bool) {
	if len(value) < 8 {
		return time.Time{}, false
	}
	t, err := time.Parse("20060102", value[:8])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
