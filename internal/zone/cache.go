// backend-go/internal/zone/cache.go
package zone

import (
	"context"

	"github.com/andresuchdata/sellerpulse/backend-go/internal/domain"
)

// BrandFetcher loads the sponsored-brand aggregate for one brand. A (nil, nil)
// result means the brand has no sponsored-brand data in the window.
type BrandFetcher func(ctx context.Context, brand string) (*domain.BrandAggregate, error)

// BrandCache memoizes brand aggregate lookups within a single classification
// pass. Products sharing a brand hit the underlying query once; a brand known
// to have no data is remembered and never re-queried. The cache lives for one
// (level, window) pass and is discarded afterwards.
type BrandCache struct {
	fetch   BrandFetcher
	entries map[string]*domain.BrandAggregate // nil value = known absent
}

// NewBrandCache creates an empty run-scoped cache around fetch.
func NewBrandCache(fetch BrandFetcher) *BrandCache {
	return &BrandCache{
		fetch:   fetch,
		entries: make(map[string]*domain.BrandAggregate),
	}
}

// Get returns the cached aggregate for brand, loading it on first access.
// It returns (nil, nil) for brands with no sponsored-brand data, including
// the empty brand string.
func (c *BrandCache) Get(ctx context.Context, brand string) (*domain.BrandAggregate, error) {
	if brand == "" {
		return nil, nil
	}

	if agg, ok := c.entries[brand]; ok {
		return agg, nil
	}

	agg, err := c.fetch(ctx, brand)
	if err != nil {
		return nil, err
	}

	c.entries[brand] = agg
	return agg, nil
}

// Len returns the number of brands seen so far, absent ones included.
func (c *BrandCache) Len() int {
	return len(c.entries)
}
