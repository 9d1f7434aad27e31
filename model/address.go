package model

import "time"

// Address is one candidate row from a location search. Fields holds the full
// column→value row as returned by the service; the named fields are the ones
// the lookup actually consumes.
type Address struct {
	UPRN        string
	DisplayName string
	Name        string
	Postcode    string
	Fields      map[string]string
}

// Label returns the best human-readable form of the address.
func (a Address) Label() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	if a.Name != "" {
		return a.Name
	}
	return "Unknown"
}

// CollectionEntry is the parsed form of a single waste-collection attribute.
// Day and Date are both optional; Remark carries whatever free text the
// service sent. Entries are never merged even when two streams share a date.
type CollectionEntry struct {
	Service string
	Day     string
	Date    time.Time
	Remark  string
}

// HasDate reports whether an explicit or computed date was resolved.
func (e CollectionEntry) HasDate() bool {
	return !e.Date.IsZero()
}
