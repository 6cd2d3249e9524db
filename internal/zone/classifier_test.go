package zone

import (
	"context"
	"testing"

	"github.com/andresuchdata/sellerpulse/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticBrandCache returns a cache whose fetcher always yields agg (which may
// be nil for "no sponsored-brand data").
func staticBrandCache(agg *domain.BrandAggregate) *BrandCache {
	return NewBrandCache(func(ctx context.Context, brand string) (*domain.BrandAggregate, error) {
		return agg, nil
	})
}

func sampleRow() domain.ProductPerformanceRow {
	return domain.ProductPerformanceRow{
		ASIN:           "A1",
		SKU:            "SKU-1",
		Brand:          "Acme",
		UniqueOrders:   5,
		PageViews:      1000,
		Sessions:       200,
		TotalSales:     500,
		TotalUnitsSold: 50,
		SPImpressions:  100,
		SPClicks:       10,
		SPSpend:        20,
		SPSales:        100,
		SPUnits:        5,
		SPOrders:       2,
		SDImpressions:  50,
		SDClicks:       5,
		SDSpend:        10,
		SDSales:        50,
		SDUnits:        2,
		SDOrders:       1,
	}
}

func TestClassifySingleRowLandsInOpportunity(t *testing.T) {
	ctx := context.Background()
	row := sampleRow()
	cache := staticBrandCache(nil)

	stats, err := ComputeStatistics(ctx, []domain.ProductPerformanceRow{row}, cache, true)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, stats.AvgConversionRate, 1e-9)
	assert.InDelta(t, 150, stats.AvgImpressionsPerProduct, 1e-9)
	assert.InDelta(t, 1000, stats.AvgPageViewsPerProduct, 1e-9)

	c := NewClassifier("acct-1", "mkt-1", domain.LevelAccount, "2026-08-01", stats, cache)
	record, err := c.Classify(ctx, row)
	require.NoError(t, err)

	// With a single product, 3*avg equals 3*own value, so the OPTIMAL
	// impression and page-view thresholds cannot hold; the row's conversion
	// rate equals the population average, so OPPORTUNITY wins.
	assert.Equal(t, domain.ZoneOpportunity, record.Zone)
	assert.Equal(t, domain.LevelAccount, record.Level)
	assert.Equal(t, "A1", record.ASIN)

	assert.Equal(t, int64(150), record.ImpressionsFromAds)
	assert.Equal(t, int64(15), record.ClicksFromAds)
	assert.Equal(t, int64(7), record.UnitsFromAds)
	assert.Equal(t, int64(3), record.OrdersFromAds)
	assert.InDelta(t, 30, record.Spend, 1e-9)
	assert.InDelta(t, 150, record.SalesFromAds, 1e-9)

	assert.Equal(t, int64(43), record.OrganicUnits)
	assert.Equal(t, int64(185), record.OrganicSessions)
	assert.InDelta(t, 350, record.OrganicSales, 1e-9)
	assert.InDelta(t, 70, record.PctOrganicSales, 1e-9)

	assert.InDelta(t, 10, record.CTR, 1e-9)
	assert.InDelta(t, 2, record.CPC, 1e-9)
	assert.InDelta(t, 5, record.ROAS, 1e-9)
	assert.InDelta(t, 20, record.ACOS, 1e-9)
	assert.InDelta(t, 6, record.TACOS, 1e-9)
	assert.InDelta(t, 5, record.ConversionRate, 1e-9)
	assert.InDelta(t, 20, record.AdConversionRate, 1e-9)
}

func TestClassifyZeroDenominatorsResolveToZero(t *testing.T) {
	ctx := context.Background()
	row := domain.ProductPerformanceRow{ASIN: "A2", Brand: "Acme"}
	cache := staticBrandCache(nil)

	stats, err := ComputeStatistics(ctx, []domain.ProductPerformanceRow{row}, cache, true)
	require.NoError(t, err)

	c := NewClassifier("acct-1", "mkt-1", domain.LevelAccount, "2026-08-01", stats, cache)
	record, err := c.Classify(ctx, row)
	require.NoError(t, err)

	assert.Zero(t, record.PctOrganicSales)
	assert.Zero(t, record.CTR)
	assert.Zero(t, record.CPC)
	assert.Zero(t, record.ROAS)
	assert.Zero(t, record.ACOS)
	assert.Zero(t, record.TACOS)
	assert.Zero(t, record.ConversionRate)
	assert.Zero(t, record.AdConversionRate)
	// Catch-all zone: conversion rate 0 equals the zero average.
	assert.Equal(t, domain.ZoneOpportunity, record.Zone)
}

func TestClassifyMissingASIN(t *testing.T) {
	cache := staticBrandCache(nil)
	c := NewClassifier("acct-1", "mkt-1", domain.LevelAccount, "2026-08-01", domain.PopulationStatistics{}, cache)

	_, err := c.Classify(context.Background(), domain.ProductPerformanceRow{SKU: "orphan"})
	assert.ErrorIs(t, err, ErrMissingASIN)
}

func TestClassifyBrandBlendingOnlyAtAccountLevel(t *testing.T) {
	ctx := context.Background()
	row := sampleRow()
	agg := &domain.BrandAggregate{Brand: "Acme", Impressions: 300, Clicks: 30, Spend: 60, Sales: 300}

	accountCache := staticBrandCache(agg)
	accountStats, err := ComputeStatistics(ctx, []domain.ProductPerformanceRow{row}, accountCache, domain.LevelAccount.BlendsBrand())
	require.NoError(t, err)
	assert.InDelta(t, 450, accountStats.AvgImpressionsPerProduct, 1e-9)

	account := NewClassifier("acct-1", "mkt-1", domain.LevelAccount, "2026-08-01", accountStats, accountCache)
	accountRecord, err := account.Classify(ctx, row)
	require.NoError(t, err)
	assert.Equal(t, int64(450), accountRecord.ImpressionsFromAds)
	assert.Equal(t, int64(45), accountRecord.ClicksFromAds)
	assert.InDelta(t, 90, accountRecord.Spend, 1e-9)
	assert.InDelta(t, 450, accountRecord.SalesFromAds, 1e-9)

	// PRODUCT level never blends even when an aggregate exists.
	productCache := staticBrandCache(agg)
	productStats, err := ComputeStatistics(ctx, []domain.ProductPerformanceRow{row}, productCache, domain.LevelProduct.BlendsBrand())
	require.NoError(t, err)
	assert.InDelta(t, 150, productStats.AvgImpressionsPerProduct, 1e-9)

	product := NewClassifier("acct-1", "mkt-1", domain.LevelProduct, "2026-08-01", productStats, productCache)
	productRecord, err := product.Classify(ctx, row)
	require.NoError(t, err)
	assert.Equal(t, int64(150), productRecord.ImpressionsFromAds)
	assert.Equal(t, int64(15), productRecord.ClicksFromAds)
	assert.InDelta(t, 30, productRecord.Spend, 1e-9)
	assert.InDelta(t, 150, productRecord.SalesFromAds, 1e-9)
	assert.Equal(t, 0, productCache.Len())
}

func TestZonePartitionIsExhaustiveAndExclusive(t *testing.T) {
	ctx := context.Background()
	rows := []domain.ProductPerformanceRow{
		// High conversion, heavy impressions and traffic: OPTIMAL candidate.
		{ASIN: "B1", UniqueOrders: 50, PageViews: 5000, SPImpressions: 10000, TotalUnitsSold: 60},
		// Average performer.
		{ASIN: "B2", UniqueOrders: 2, PageViews: 1000, SPImpressions: 100},
		// Below-average conversion.
		{ASIN: "B3", UniqueOrders: 0, PageViews: 1000, SPImpressions: 50},
	}
	cache := staticBrandCache(nil)

	stats, err := ComputeStatistics(ctx, rows, cache, false)
	require.NoError(t, err)

	c := NewClassifier("acct-1", "mkt-1", domain.LevelProduct, "2026-08-01", stats, cache)

	seen := map[domain.Zone]int{}
	for _, row := range rows {
		record, err := c.Classify(ctx, row)
		require.NoError(t, err)
		require.True(t, record.Zone.Valid(), "row %s got unknown zone %q", row.ASIN, record.Zone)
		seen[record.Zone]++
	}

	total := 0
	for _, n := range seen {
		total += n
	}
	assert.Equal(t, len(rows), total, "every row lands in exactly one zone")

	// avg conversion = 52*100/7000 ≈ 0.743, avg impressions ≈ 3383, avg page
	// views ≈ 2333. B1: conversion 1.0 > 0.2, impressions and page views do
	// not clear 3x the average, so it falls through to OPPORTUNITY.
	recB1, err := c.Classify(ctx, rows[0])
	require.NoError(t, err)
	assert.Equal(t, domain.ZoneOpportunity, recB1.Zone)

	recB3, err := c.Classify(ctx, rows[2])
	require.NoError(t, err)
	assert.Equal(t, domain.ZoneWorkInProgress, recB3.Zone)
}

func TestAssignZoneOptimal(t *testing.T) {
	cache := staticBrandCache(nil)
	stats := domain.PopulationStatistics{
		AvgConversionRate:        0.1,
		AvgImpressionsPerProduct: 100,
		AvgPageViewsPerProduct:   100,
	}
	c := NewClassifier("acct-1", "mkt-1", domain.LevelProduct, "2026-08-01", stats, cache)

	record, err := c.Classify(context.Background(), domain.ProductPerformanceRow{
		ASIN:          "C1",
		UniqueOrders:  10,
		PageViews:     400,
		SPImpressions: 300,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ZoneOptimal, record.Zone)
}
