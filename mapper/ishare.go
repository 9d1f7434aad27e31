package mapper

import (
	"regexp"
	"strings"

	"github.com/M1XZG/Swindon-Rubbish-Days/ishare"
	"github.com/M1XZG/Swindon-Rubbish-Days/model"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Addresses zips the search response's columns against each data row and
// builds one model.Address per row, preserving response order. The service
// wraps matched terms in markup (e.g. <b>SN1 2JG</b>), so labels are
// stripped of simple HTML tags.
func Addresses(resp *ishare.LocationSearchResponse) []model.Address {
	if resp == nil || len(resp.Data) == 0 {
		return nil
	}

	out := make([]model.Address, 0, len(resp.Data))
	for _, row := range resp.Data {
		fields := make(map[string]string, len(resp.Columns))
		for idx, col := range resp.Columns {
			if idx >= len(row) {
				break
			}
			fields[col] = string(row[idx])
		}
		out = append(out, model.Address{
			UPRN:        strings.TrimSpace(fields["UniqueId"]),
			DisplayName: StripTags(fields["DisplayName"]),
			Name:        StripTags(fields["Name"]),
			Postcode:    StripTags(fields["Postcode"]),
			Fields:      fields,
		})
	}
	return out
}

// StripTags removes simple HTML tags from an API string.
func StripTags(value string) string {
	if value == "" {
		return ""
	}
	return strings.TrimSpace(tagPattern.ReplaceAllString(value, ""))
}
