package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/andresuchdata/sellerpulse/backend-go/internal/config"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	zoneSummaryKeyPrefix = "zones:summary"
	zoneScanBatchSize    = 100
)

// ZoneCache is the read cache in front of the zone dashboard queries.
type ZoneCache interface {
	GetSummary(ctx context.Context, filter domain.ZoneFilter) ([]domain.ZoneSummary, bool, error)
	SetSummary(ctx context.Context, filter domain.ZoneFilter, summaries []domain.ZoneSummary) error
	InvalidateAll(ctx context.Context) error
}

type redisZoneCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopZoneCache struct{}

func NewZoneCache(cfg config.CacheConfig) (ZoneCache, error) {
	if !cfg.Enabled {
		return &noopZoneCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisZoneCache{client: client, ttl: ttl}, nil
}

func NewNoopZoneCache() ZoneCache {
	return &noopZoneCache{}
}

// NewRedisZoneCache wraps an existing client; used by tests.
func NewRedisZoneCache(client *redis.Client, ttl time.Duration) ZoneCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &redisZoneCache{client: client, ttl: ttl}
}

func (c *redisZoneCache) GetSummary(ctx context.Context, filter domain.ZoneFilter) ([]domain.ZoneSummary, bool, error) {
	key := buildZoneSummaryKey(filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summaries []domain.ZoneSummary
	if err := json.Unmarshal(payload, &summaries); err != nil {
		return nil, false, fmt.Errorf("decode zone summary cache: %w", err)
	}

	return summaries, true, nil
}

func (c *redisZoneCache) SetSummary(ctx context.Context, filter domain.ZoneFilter, summaries []domain.ZoneSummary) error {
	key := buildZoneSummaryKey(filter)
	payload, err := json.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("encode zone summary cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisZoneCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, zoneSummaryKeyPrefix, zoneScanBatchSize)
}

func (n *noopZoneCache) GetSummary(ctx context.Context, filter domain.ZoneFilter) ([]domain.ZoneSummary, bool, error) {
	return nil, false, nil
}

func (n *noopZoneCache) SetSummary(ctx context.Context, filter domain.ZoneFilter, summaries []domain.ZoneSummary) error {
	return nil
}

func (n *noopZoneCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildZoneSummaryKey(filter domain.ZoneFilter) string {
	return fmt.Sprintf("%s:%s", zoneSummaryKeyPrefix, zoneFilterHash(filter))
}

func zoneFilterHash(filter domain.ZoneFilter) string {
	parts := []string{}

	if filter.AccountID != "" {
		parts = append(parts, "account_id="+strings.TrimSpace(filter.AccountID))
	}
	if filter.MarketplaceID != "" {
		parts = append(parts, "marketplace_id="+strings.TrimSpace(filter.MarketplaceID))
	}
	if filter.ZoneDate != "" {
		parts = append(parts, "zone_date="+strings.TrimSpace(filter.ZoneDate))
	}
	if filter.Level != "" {
		parts = append(parts, "level="+strings.ToUpper(string(filter.Level)))
	}
	if filter.Zone != "" {
		parts = append(parts, "zone="+strings.ToUpper(string(filter.Zone)))
	}
	if filter.Brand != "" {
		parts = append(parts, "brand="+strings.ToUpper(strings.TrimSpace(filter.Brand)))
	}

	if len(parts) == 0 {
		return "default"
	}

	sort.Strings(parts)
	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
