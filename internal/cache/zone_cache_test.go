package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (ZoneCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisZoneCache(client, time.Minute), mr
}

func summaryFilter() domain.ZoneFilter {
	return domain.ZoneFilter{
		AccountID:     "acct-1",
		MarketplaceID: "ATVPDKIKX0DER",
		Level:         domain.LevelAccount,
		ZoneDate:      "2026-07-31",
	}
}

func TestZoneCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	summaries := []domain.ZoneSummary{
		{Zone: domain.ZoneOptimal, Count: 3},
		{Zone: domain.ZoneOpportunity, Count: 12},
	}
	require.NoError(t, cache.SetSummary(ctx, summaryFilter(), summaries))

	got, hit, err := cache.GetSummary(ctx, summaryFilter())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, summaries, got)
}

func TestZoneCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	got, hit, err := cache.GetSummary(context.Background(), summaryFilter())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestZoneCacheKeyDependsOnFilter(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetSummary(ctx, summaryFilter(), []domain.ZoneSummary{{Zone: domain.ZoneOptimal, Count: 1}}))

	other := summaryFilter()
	other.Level = domain.LevelProduct
	_, hit, err := cache.GetSummary(ctx, other)
	require.NoError(t, err)
	assert.False(t, hit, "a different level must resolve to a different cache key")
}

func TestZoneCacheInvalidateAll(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetSummary(ctx, summaryFilter(), []domain.ZoneSummary{{Zone: domain.ZoneOptimal, Count: 1}}))

	other := summaryFilter()
	other.ZoneDate = "2026-07-30"
	require.NoError(t, cache.SetSummary(ctx, other, []domain.ZoneSummary{{Zone: domain.ZoneOpportunity, Count: 2}}))

	// An unrelated key must survive the prefix sweep.
	mr.Set("other:key", "kept")

	require.NoError(t, cache.InvalidateAll(ctx))

	_, hit, err := cache.GetSummary(ctx, summaryFilter())
	require.NoError(t, err)
	assert.False(t, hit)

	_, hit, err = cache.GetSummary(ctx, other)
	require.NoError(t, err)
	assert.False(t, hit)

	assert.True(t, mr.Exists("other:key"))
}
