package schedule

import (
	"time"

	"github.com/M1XZG/Swindon-Rubbish-Days/model"
)

// Upcoming is the earliest dated collection on or after a given day, with
// every stream collected on that date.
type Upcoming struct {
	Date     time.Time
	Services []string
}

// NextCollection scans the entries for the earliest date on or after today.
// Streams sharing that date keep their response order. False when no entry
// carries an upcoming date.
func NextCollection(entries []model.CollectionEntry, today time.Time) (Upcoming, bool) {
	if today.IsZero() {
		today = time.Now()
	}
	floor := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var best time.Time
	for _, entry := range entries {
		if !entry.HasDate() || entry.Date.Before(floor) {
			continue
		}
		if best.IsZero() || entry.Date.Before(best) {
			best = entry.Date
		}
	}
	if best.IsZero() {
		return Upcoming{}, false
	}

	upcoming := Upcoming{Date: best}
	for _, entry := range entries {
		if entry.HasDate() && entry.Date.Equal(best) {
			upcoming.Services = append(upcoming.Services, entry.Service)
		}
	}
	return upcoming, true
}
