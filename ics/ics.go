// Package ics writes a waste-collection schedule as an iCalendar file so the
// dates can be imported into a calendar app.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/M1XZG/Swindon-Rubbish-Days/model"
)

const (
	ProductID = "-//Swindon Rubbish Days//Collection Lookup//EN"
	Timezone  = "Europe/London"
)

// Write emits one all-day VEVENT per dated entry. Undated entries (status
// text like "No") have no calendar representation and are skipped.
func Write(w io.Writer, label string, entries []model.CollectionEntry, now time.Time) error {
	if now.IsZero() {
		now = time.Now()
	}

	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	fmt.Fprintf(&b, "PRODID:%s\r\n", ProductID)
	fmt.Fprintf(&b, "X-WR-CALNAME:Waste collections %s\r\n", escapeText(label))
	fmt.Fprintf(&b, "X-WR-TIMEZONE:%s\r\n", Timezone)
	b.WriteString("CALSCALE:GREGORIAN\r\n")

	stamp := now.UTC().Format("20060102T150405Z")
	for _, entry := range entries {
		if !entry.HasDate() {
			continue
		}
		date := entry.Date
		uid := fmt.Sprintf("%s-%s@swindon-rubbish-days", date.Format("2006-01-02"), slug(entry.Service))

		b.WriteString("BEGIN:VEVENT\r\n")
		fmt.Fprintf(&b, "UID:%s\r\n", uid)
		fmt.Fprintf(&b, "DTSTAMP:%s\r\n", stamp)
		fmt.Fprintf(&b, "DTSTART;VALUE=DATE:%s\r\n", date.Format("20060102"))
		fmt.Fprintf(&b, "DTEND;VALUE=DATE:%s\r\n", date.AddDate(0, 0, 1).Format("20060102"))
		fmt.Fprintf(&b, "SUMMARY:%s\r\n", escapeText(entry.Service))
		if entry.Remark != "" {
			fmt.Fprintf(&b, "DESCRIPTION:%s\r\n", escapeText(entry.Remark))
		}
		b.WriteString("TRANSP:TRANSPARENT\r\n")
		b.WriteString("END:VEVENT\r\n")
	}
	b.WriteString("END:VCALENDAR\r\n")

	_, err := io.WriteString(w, b.String())
	return err
}

var textEscaper = strings.NewReplacer(
	"\\", "\\\\",
	";", "\\;",
	",", "\\,",
	"\n", "\\n",
)

// escapeText escapes the characters RFC 5545 treats specially in text values.
func escapeText(value string) string {
	return textEscaper.Replace(value)
}

func slug(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	return strings.ReplaceAll(value, " ", "-")
}
