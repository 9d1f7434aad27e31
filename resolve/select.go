package resolve

import (
	"regexp"
	"strings"

	"github.com/M1XZG/Swindon-Rubbish-Days/model"
)

// SelectAddress picks one candidate from a search result. The first address
// whose label contains the house number as a whole word wins; with no house
// number, or no match, the first candidate is returned and matched is false
// so the caller can note the fallback. Deterministic for a given list.
func SelectAddress(addresses []model.Address, houseNumber string) (model.Address, bool) {
	if len(addresses) == 0 {
		return model.Address{}, false
	}
	houseNumber = strings.TrimSpace(houseNumber)
	if houseNumber == "" {
		return addresses[0], false
	}

	pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(houseNumber) + `\b`)
	if err != nil {
		return addresses[0], false
	}
	for _, addr := range addresses {
		if pattern.MatchString(addr.Label()) {
			return addr, true
		}
	}
	return addresses[0], false
}
