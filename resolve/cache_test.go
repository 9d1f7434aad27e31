package resolve

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	cache, err := LoadCache(path)
	require.NoError(t, err)
	assert.Empty(t, cache.Entries)

	cache.Set("SN1 2JG", "2", CacheEntry{
		UPRN:        "10001235",
		DisplayName: "2 High Street, SN1 2JG",
		Matched:     true,
		UpdatedAt:   time.Date(2025, 12, 10, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, SaveCache(path, cache))

	reloaded, err := LoadCache(path)
	require.NoError(t, err)

	entry, ok := reloaded.Get("sn1 2jg", "2")
	require.True(t, ok, "keys are case-insensitive")
	assert.Equal(t, "10001235", entry.UPRN)
	assert.Equal(t, "SN1 2JG", entry.Postcode)
	assert.True(t, entry.Matched)
}

func TestCache_KeyIncludesHouseNumber(t *testing.T) {
	cache := &Cache{}
	cache.Set("SN1 2JG", "1", CacheEntry{UPRN: "10001234"})
	cache.Set("SN1 2JG", "2", CacheEntry{UPRN: "10001235"})

	one, ok := cache.Get("SN1 2JG", "1")
	require.True(t, ok)
	two, ok := cache.Get("SN1 2JG", "2")
	require.True(t, ok)
	assert.NotEqual(t, one.UPRN, two.UPRN)

	_, ok = cache.Get("SN1 2JG", "")
	assert.False(t, ok)
}

func TestCache_EmptyPathIsInMemory(t *testing.T) {
	cache, err := LoadCache("")
	require.NoError(t, err)
	require.NotNil(t, cache)
	require.NoError(t, SaveCache("", cache))
}

func TestCache_NilSafe(t *testing.T) {
	var cache *Cache
	_, ok := cache.Get("SN1 2JG", "")
	assert.False(t, ok)
	cache.Set("SN1 2JG", "", CacheEntry{})
}
