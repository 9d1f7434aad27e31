package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/M1XZG/Swindon-Rubbish-Days/ishare"
)

// Wednesday.
var today = time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC)

func TestWeekday(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain day", "Friday", "Friday"},
		{"inside sentence", "Collected every friday morning", "Friday"},
		{"monday-first priority", "Tuesday and Monday", "Monday"},
		{"whole word only", "Fridays", ""},
		{"no day", "No", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Weekday(tt.text))
		})
	}
}

func TestExplicitDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
		ok   bool
	}{
		{"month name", "2 January 2026", time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC), true},
		{"weekday prefix", "Friday, 2 January 2026", time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC), true},
		{"lowercase", "next collection 25 december 2025", time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC), true},
		{"numeric dmy", "02/01/2026", time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC), true},
		{"numeric dashes", "2-1-2026", time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC), true},
		{"impossible date", "31 February 2026", time.Time{}, false},
		{"no date", "Collected every Friday", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExplicitDate(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNextWeekday(t *testing.T) {
	friday, ok := NextWeekday(today, "Friday")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.December, 12, 0, 0, 0, 0, time.UTC), friday)

	// Today already is the named weekday: "next" includes today.
	wednesday, ok := NextWeekday(today, "Wednesday")
	require.True(t, ok)
	assert.Equal(t, today, wednesday)

	// Day earlier in the week wraps to next week.
	monday, ok := NextWeekday(today, "monday")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC), monday)

	_, ok = NextWeekday(today, "Route 12")
	assert.False(t, ok)
}

func localInfoItems(t *testing.T, payload string) []ishare.LocalInfoItem {
	t.Helper()
	var items []ishare.LocalInfoItem
	require.NoError(t, json.Unmarshal([]byte(payload), &items))
	return items
}

func TestEntries_WeekdayOnlyComputesNextDate(t *testing.T) {
	items := localInfoItems(t, `[{"Results":{"Household_Waste":{"_":"Collected every Friday"}}}]`)

	entries := Entries(items, today)
	require.Len(t, entries, 1)
	assert.Equal(t, "Household Waste", entries[0].Service)
	assert.Equal(t, "Friday", entries[0].Day)
	assert.Equal(t, "2025-12-12", entries[0].Date.Format("2006-01-02"))
	assert.Equal(t, "Collected every Friday", entries[0].Remark)
}

func TestEntries_ExplicitDateBeatsComputedWeekday(t *testing.T) {
	items := localInfoItems(t, `[{"Results":{"Bulky_Waste":{"_":"Friday, 2 January 2026"}}}]`)

	entries := Entries(items, today)
	require.Len(t, entries, 1)
	assert.Equal(t, "Friday", entries[0].Day)
	assert.Equal(t, "2026-01-02", entries[0].Date.Format("2006-01-02"), "explicit date wins over next-Friday")
}

func TestEntries_RemarkOnly(t *testing.T) {
	items := localInfoItems(t, `[{"Results":{"Clinical_Waste":{"_":"No"}}}]`)

	entries := Entries(items, today)
	require.Len(t, entries, 1)
	assert.Equal(t, "Clinical Waste", entries[0].Service)
	assert.Empty(t, entries[0].Day)
	assert.False(t, entries[0].HasDate())
	assert.Equal(t, "No", entries[0].Remark)
}

func TestEntries_StringDetail(t *testing.T) {
	items := localInfoItems(t, `[{"Results":{"Garden_Waste":"Collected every Wednesday"}}]`)

	entries := Entries(items, today)
	require.Len(t, entries, 1)
	assert.Equal(t, "Wednesday", entries[0].Day)
	assert.Equal(t, "2025-12-10", entries[0].Date.Format("2006-01-02"))
}

func TestEntries_AlternateKeysFillGaps(t *testing.T) {
	items := localInfoItems(t, `[{"Results":{
		"Household_Waste":{"_":"See calendar","collectday":"Thursday"},
		"Recycling":{"Info":"Next collection 25 December 2025"}
	}}]`)

	entries := Entries(items, today)
	require.Len(t, entries, 2)

	assert.Equal(t, "Thursday", entries[0].Day)
	assert.Equal(t, "2025-12-11", entries[0].Date.Format("2006-01-02"))
	assert.Equal(t, "See calendar", entries[0].Remark)

	assert.Equal(t, "Next collection 25 December 2025", entries[1].Remark)
	assert.Equal(t, "2025-12-25", entries[1].Date.Format("2006-01-02"))
}

func TestEntries_OrderFollowsResponse(t *testing.T) {
	items := localInfoItems(t, `[{"Results":{
		"Zeta":{"_":"Monday"},
		"Alpha":{"_":"Tuesday"},
		"Mid":{"_":"Friday"}
	}}]`)

	entries := Entries(items, today)
	require.Len(t, entries, 3)
	assert.Equal(t, "Zeta", entries[0].Service)
	assert.Equal(t, "Alpha", entries[1].Service)
	assert.Equal(t, "Mid", entries[2].Service)
}

func TestEntries_EmptyDetailSkipped(t *testing.T) {
	items := localInfoItems(t, `[{"Results":{"Empty":{},"Kept":{"_":"Yes"}}}]`)

	entries := Entries(items, today)
	require.Len(t, entries, 1)
	assert.Equal(t, "Kept", entries[0].Service)
}

func TestEntries_Idempotent(t *testing.T) {
	payload := `[{"Results":{"Household_Waste":{"_":"Collected every Friday"},"Clinical_Waste":{"_":"No"}}}]`

	first := Entries(localInfoItems(t, payload), today)
	second := Entries(localInfoItems(t, payload), today)
	assert.Equal(t, first, second)
}
