// Package schedule turns raw waste-collection attributes into dated entries
// and renders them. Parsing is pure: the current date is always passed in.
package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/M1XZG/Swindon-Rubbish-Days/ishare"
	"github.com/M1XZG/Swindon-Rubbish-Days/model"
)

var weekdayNames = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

var monthNumbers = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

var weekdayPatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(weekdayNames))
	for _, day := range weekdayNames {
		patterns[day] = regexp.MustCompile(`(?i)\b` + day + `\b`)
	}
	return patterns
}()

var (
	// "Friday, 2 January 2026" / "2 January 2026"
	monthNamePattern = regexp.MustCompile(`(?i)\b(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)?\s*,?\s*(\d{1,2})\s+(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{4})\b`)

	// "02/01/2026" day/month/year
	numericPattern = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`)
)

// Weekday returns the first weekday name found in the text as a whole word,
// title-cased, scanning Monday through Sunday. Empty when none is present.
func Weekday(text string) string {
	for _, day := range weekdayNames {
		if weekdayPatterns[day].MatchString(text) {
			return titleCase(day)
		}
	}
	return ""
}

// ExplicitDate finds a calendar date in the text, month-name form first, then
// numeric day/month/year. Dates that do not exist on the calendar are
// rejected.
func ExplicitDate(text string) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}
	if m := monthNamePattern.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month := monthNumbers[strings.ToLower(m[2])]
		year, _ := strconv.Atoi(m[3])
		return makeDate(year, month, day)
	}
	if m := numericPattern.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return makeDate(year, time.Month(month), day)
	}
	return time.Time{}, false
}

// NextWeekday computes the next occurrence of the named weekday on or after
// today. Today counts when it already is that weekday. Returns false for
// text that is not a weekday name.
func NextWeekday(today time.Time, day string) (time.Time, bool) {
	target := -1
	lowered := strings.ToLower(strings.TrimSpace(day))
	for idx, name := range weekdayNames {
		if name == lowered {
			target = idx
			break
		}
	}
	if target < 0 {
		return time.Time{}, false
	}

	// time.Weekday counts Sunday as 0; the list counts Monday as 0.
	current := (int(today.Weekday()) + 6) % 7
	delta := (target - current + 7) % 7
	return today.AddDate(0, 0, delta), true
}

// Entries produces one CollectionEntry per attribute, in response order.
// Attributes with neither a weekday nor any text are skipped.
func Entries(items []ishare.LocalInfoItem, today time.Time) []model.CollectionEntry {
	if today.IsZero() {
		today = time.Now()
	}
	var out []model.CollectionEntry
	for _, item := range items {
		for _, attr := range item.Results {
			if entry, ok := entryFor(attr, today); ok {
				out = append(out, entry)
			}
		}
	}
	return out
}

func entryFor(attr ishare.ResultAttribute, today time.Time) (model.CollectionEntry, bool) {
	detail := attr.Detail
	message := detail.Text

	var day string
	var date time.Time
	if message != "" {
		day = Weekday(message)
		date, _ = ExplicitDate(message)
	}

	for _, alt := range []string{detail.CollectDay, detail.CollectionRoute, detail.CollectionDay} {
		if alt == "" {
			continue
		}
		if day == "" {
			day = alt
		}
		if date.IsZero() {
			if parsed, ok := ExplicitDate(alt); ok {
				date = parsed
			}
		}
	}

	if message == "" && detail.Info != "" {
		message = detail.Info
		if date.IsZero() {
			date, _ = ExplicitDate(message)
		}
	}

	if day == "" && message == "" {
		return model.CollectionEntry{}, false
	}

	if date.IsZero() && day != "" {
		if next, ok := NextWeekday(today, day); ok {
			date = next
		}
	}

	// Computed dates inherit today's clock time and zone; explicit dates are
	// already UTC midnight. Normalize so equal calendar days compare equal.
	if !date.IsZero() {
		date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	}

	return model.CollectionEntry{
		Service: strings.ReplaceAll(attr.Name, "_", " "),
		Day:     day,
		Date:    date,
		Remark:  message,
	}, true
}

func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != month || date.Year() != year {
		return time.Time{}, false
	}
	return date, true
}

func titleCase(day string) string {
	if day == "" {
		return ""
	}
	return strings.ToUpper(day[:1]) + day[1:]
}
