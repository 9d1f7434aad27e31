package resolve

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/M1XZG/Swindon-Rubbish-Days/model"
)

type CacheEntry struct {
	Postcode    string    `json:"postcode"`
	HouseNumber string    `json:"house_number,omitempty"`
	UPRN        string    `json:"uprn"`
	DisplayName string    `json:"display_name"`
	Matched     bool      `json:"matched"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Cache remembers which address a postcode + house number resolved to, so
// repeat lookups skip the search call.
type Cache struct {
	Entries map[string]CacheEntry `json:"entries"`
}

func LoadCache(path string) (*Cache, error) {
	if strings.TrimSpace(path) == "" {
		return &Cache{Entries: map[string]CacheEntry{}}, nil
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Cache{Entries: map[string]CacheEntry{}}, nil
		}
		return nil, err
	}
	var cache Cache
	if err := json.Unmarshal(payload, &cache); err != nil {
		return nil, err
	}
	if cache.Entries == nil {
		cache.Entries = map[string]CacheEntry{}
	}
	return &cache, nil
}

func SaveCache(path string, cache *Cache) error {
	if cache == nil {
		return nil
	}
	if strings.TrimSpace(path) == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := json.Marshal(cache)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(payload, '\n'), 0o644)
}

func (c *Cache) Get(postcode, houseNumber string) (CacheEntry, bool) {
	if c == nil {
		return CacheEntry{}, false
	}
	entry, ok := c.Entries[cacheKey(postcode, houseNumber)]
	return entry, ok
}

func (c *Cache) Set(postcode, houseNumber string, entry CacheEntry) {
	if c == nil {
		return
	}
	if c.Entries == nil {
		c.Entries = map[string]CacheEntry{}
	}
	entry.Postcode = postcode
	entry.HouseNumber = houseNumber
	c.Entries[cacheKey(postcode, houseNumber)] = entry
}

func cacheKey(postcode, houseNumber string) string {
	key := strings.ToLower(strings.TrimSpace(postcode))
	house := strings.ToLower(strings.TrimSpace(houseNumber))
	if house != "" {
		key += "|" + house
	}
	return key
}

func entryAddress(entry CacheEntry) model.Address {
	return model.Address{
		UPRN:        entry.UPRN,
		DisplayName: entry.DisplayName,
		Postcode:    entry.Postcode,
	}
}
