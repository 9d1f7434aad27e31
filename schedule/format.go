package schedule

import (
	"strings"

	"github.com/M1XZG/Swindon-Rubbish-Days/model"
)

const displaySeparator = " | "

// Line renders one entry's detail: weekday, ISO date, then remark, joined
// with a fixed separator. "No details" when nothing was parsed.
func Line(entry model.CollectionEntry) string {
	parts := make([]string, 0, 3)
	if entry.Day != "" {
		parts = append(parts, entry.Day)
	}
	if entry.HasDate() {
		parts = append(parts, entry.Date.Format("2006-01-02"))
	}
	if entry.Remark != "" {
		parts = append(parts, entry.Remark)
	}
	if len(parts) == 0 {
		parts = append(parts, "No details")
	}
	return strings.Join(parts, displaySeparator)
}

// Format renders the full lookup result: address label, UPRN, and one line
// per stream in the order the attributes arrived.
func Format(address model.Address, entries []model.CollectionEntry) string {
	var b strings.Builder
	b.WriteString("Address: " + address.Label() + "\n")
	uprn := address.UPRN
	if uprn == "" {
		uprn = "N/A"
	}
	b.WriteString("UPRN: " + uprn + "\n")

	if len(entries) == 0 {
		b.WriteString("No collection details found.\n")
		return b.String()
	}

	b.WriteString("Collections:\n")
	for _, entry := range entries {
		b.WriteString("  - " + entry.Service + ": " + Line(entry) + "\n")
	}
	return b.String()
}
