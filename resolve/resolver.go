package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/M1XZG/Swindon-Rubbish-Days/ishare"
	"github.com/M1XZG/Swindon-Rubbish-Days/mapper"
	"github.com/M1XZG/Swindon-Rubbish-Days/model"
)

// ErrNoAddresses marks a postcode that yielded an empty candidate list.
var ErrNoAddresses = fmt.Errorf("resolve: no addresses found: %w", ishare.ErrNotFound)

type Searcher interface {
	LocationSearchPages(ctx context.Context, params ishare.LocationSearchParams, handler ishare.PageHandler) error
}

// Resolution is the outcome of resolving a postcode to a single address.
type Resolution struct {
	Address model.Address
	// Matched is true when the house number picked the candidate; false
	// means the first candidate was used as a fallback.
	Matched bool
	Cached  bool
}

type Resolver struct {
	searcher Searcher
	cache    *Cache
	now      func() time.Time
}

func NewResolver(searcher Searcher, cache *Cache) *Resolver {
	return &Resolver{
		searcher: searcher,
		cache:    cache,
		now:      time.Now,
	}
}

// Search collects every candidate address for a postcode, in response order.
func (r *Resolver) Search(ctx context.Context, postcode string) ([]model.Address, error) {
	if r == nil || r.searcher == nil {
		return nil, errors.New("resolve: resolver is not configured")
	}
	if strings.TrimSpace(postcode) == "" {
		return nil, errors.New("resolve: postcode is required")
	}

	var addresses []model.Address
	params := ishare.LocationSearchParams{Location: postcode}
	err := r.searcher.LocationSearchPages(ctx, params, func(resp *ishare.LocationSearchResponse) error {
		addresses = append(addresses, mapper.Addresses(resp)...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

// Resolve turns a postcode and optional house number into one address,
// consulting the cache first when one is attached.
func (r *Resolver) Resolve(ctx context.Context, postcode, houseNumber string) (Resolution, error) {
	if r == nil || r.searcher == nil {
		return Resolution{}, errors.New("resolve: resolver is not configured")
	}
	if strings.TrimSpace(postcode) == "" {
		return Resolution{}, errors.New("resolve: postcode is required")
	}

	if entry, ok := r.cache.Get(postcode, houseNumber); ok {
		return Resolution{
			Address: entryAddress(entry),
			Matched: entry.Matched,
			Cached:  true,
		}, nil
	}

	addresses, err := r.Search(ctx, postcode)
	if err != nil {
		return Resolution{}, err
	}
	if len(addresses) == 0 {
		return Resolution{}, fmt.Errorf("%w for %q", ErrNoAddresses, postcode)
	}

	selected, matched := SelectAddress(addresses, houseNumber)
	if r.cache != nil {
		r.cache.Set(postcode, houseNumber, CacheEntry{
			UPRN:        selected.UPRN,
			DisplayName: selected.Label(),
			Matched:     matched,
			UpdatedAt:   r.now(),
		})
	}
	return Resolution{Address: selected, Matched: matched}, nil
}
