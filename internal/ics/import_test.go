package ics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calendarWith(events ...string) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//test//EN\r\n")
	for _, e := range events {
		b.WriteString(e)
	}
	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

func TestParseSingleEvent(t *testing.T) {
	payload := calendarWith(
		"BEGIN:VEVENT\r\nUID:1@test\r\nSUMMARY:Team Sync\r\nDTSTART:20240610T090000\r\nDTEND:20240610T100000\r\nEND:VEVENT\r\n",
	)

	entries, err := Parse(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Team Sync", entries[0].Title)
	assert.Equal(t, "2024-06-10", entries[0].StartDate)
	assert.Equal(t, "2024-06-10", entries[0].EndDate)
}

func TestParseDateOnlyValues(t *testing.T) {
	payload := calendarWith(
		"BEGIN:VEVENT\r\nUID:2@test\r\nSUMMARY:Spring clean\r\nDTSTART;VALUE=DATE:20240401\r\nDTEND;VALUE=DATE:20240403\r\nEND:VEVENT\r\n",
	)

	entries, err := Parse(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-04-01", entries[0].StartDate)
	assert.Equal(t, "2024-04-03", entries[0].EndDate)
}

func TestParseSkipsIncompleteEvents(t *testing.T) {
	payload := calendarWith(
		"BEGIN:VEVENT\r\nUID:3@test\r\nDTSTART:20240610T090000\r\nDTEND:20240610T100000\r\nEND:VEVENT\r\n",
		"BEGIN:VEVENT\r\nUID:4@test\r\nSUMMARY:No dates\r\nEND:VEVENT\r\n",
		"BEGIN:VEVENT\r\nUID:5@test\r\nSUMMARY:Kept\r\nDTSTART:20240611T090000\r\nDTEND:20240611T100000\r\nEND:VEVENT\r\n",
	)

	entries, err := Parse(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Kept", entries[0].Title)
}

func TestParseMalformedInput(t *testing.T) {
	_, err := Parse(strings.NewReader("this is not a calendar"))
	assert.Error(t, err)
}

func TestParseEmptyCalendar(t *testing.T) {
	entries, err := Parse(strings.NewReader(calendarWith()))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseExpandsRecurrence(t *testing.T) {
	payload := calendarWith(
		"BEGIN:VEVENT\r\nUID:6@test\r\nSUMMARY:Weekly visit\r\nDTSTART:20240304T090000\r\nDTEND:20240304T100000\r\nRRULE:FREQ=WEEKLY;COUNT=3\r\nEND:VEVENT\r\n",
	)

	entries, err := Parse(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2024-03-04", entries[0].StartDate)
	assert.Equal(t, "2024-03-11", entries[1].StartDate)
	assert.Equal(t, "2024-03-18", entries[2].StartDate)
	for _, e := range entries {
		assert.Equal(t, "Weekly visit", e.Title)
		assert.Equal(t, e.StartDate, e.EndDate)
	}
}

func TestParseCapsRecurrence(t *testing.T) {
	payload := calendarWith(
		"BEGIN:VEVENT\r\nUID:7@test\r\nSUMMARY:Daily forever\r\nDTSTART:20240101T080000\r\nDTEND:20240101T090000\r\nRRULE:FREQ=DAILY\r\nEND:VEVENT\r\n",
	)

	entries, err := Parse(strings.NewReader(payload))
	require.NoError(t, err)
	assert.Len(t, entries, MaxRecurrenceInstances)
}
