// backend-go/internal/zone/classifier.go
package zone

import (
	"context"
	"errors"

	"github.com/andresuchdata/sellerpulse/backend-go/internal/domain"
)

// ErrMissingASIN marks a malformed row that lacks its product identifier.
// Callers skip the row with a warning; the pass continues.
var ErrMissingASIN = errors.New("row has no asin")

// Thresholds for the OPTIMAL zone. A product qualifies when its own conversion
// rate clears the floor and both its ad impressions and page views run at
// least three times the population average.
const (
	optimalConversionFloor  = 0.2
	optimalPopulationFactor = 3.0
)

// Classifier performs the second pass: it blends each row's ad metrics,
// derives the ratio columns, and assigns exactly one zone by evaluating the
// eligibility rules in strict order. All ratio computations resolve zero
// denominators to zero.
type Classifier struct {
	accountID     string
	marketplaceID string
	level         domain.Level
	zoneDate      string
	stats         domain.PopulationStatistics
	cache         *BrandCache
}

// NewClassifier builds a classifier for one (level, window) pass. The cache
// must be the same instance the statistics pass used, so brand lookups stay
// memoized across both passes. Brand blending follows the level: only the
// account-wide pass folds sponsored-brand aggregates into row totals.
func NewClassifier(accountID, marketplaceID string, level domain.Level, zoneDate string, stats domain.PopulationStatistics, cache *BrandCache) *Classifier {
	return &Classifier{
		accountID:     accountID,
		marketplaceID: marketplaceID,
		level:         level,
		zoneDate:      zoneDate,
		stats:         stats,
		cache:         cache,
	}
}

// Classify emits the classification record for one row. It returns
// ErrMissingASIN for rows without a product identifier.
func (c *Classifier) Classify(ctx context.Context, row domain.ProductPerformanceRow) (*domain.ZoneClassificationRecord, error) {
	if row.ASIN == "" {
		return nil, ErrMissingASIN
	}

	unitsFromAds := row.SPUnits + row.SDUnits
	ordersFromAds := row.SPOrders + row.SDOrders
	spendFromAds := row.SPSpend + row.SDSpend
	salesFromAds := row.SPSales + row.SDSales
	clicksFromAds := row.SPClicks + row.SDClicks
	impressionsFromAds := row.SPImpressions + row.SDImpressions

	if c.level.BlendsBrand() {
		agg, err := c.cache.Get(ctx, row.Brand)
		if err != nil {
			return nil, err
		}
		if agg != nil {
			spendFromAds += agg.Spend
			salesFromAds += agg.Sales
			clicksFromAds += agg.Clicks
			impressionsFromAds += agg.Impressions
		}
	}

	organicUnits := row.TotalUnitsSold - unitsFromAds
	organicSessions := row.Sessions - clicksFromAds
	organicSales := row.TotalSales - salesFromAds
	pctOrganicSales := safeDiv(organicSales, row.TotalSales) * 100

	asinConversionRate := safeDiv(float64(row.UniqueOrders)*100, float64(row.PageViews))

	record := &domain.ZoneClassificationRecord{
		AccountID:     c.accountID,
		MarketplaceID: c.marketplaceID,
		Level:         c.level,
		ZoneDate:      c.zoneDate,
		Zone:          c.assignZone(asinConversionRate, impressionsFromAds, row.PageViews),
		ASIN:          row.ASIN,

		SKU:             row.SKU,
		ProductName:     row.ProductName,
		ProductImage:    row.ProductImage,
		Category:        row.Category,
		Subcategory:     row.Subcategory,
		CategoryRank:    row.CategoryRank,
		SubcategoryRank: row.SubcategoryRank,
		Brand:           row.Brand,
		TotalSales:      row.TotalSales,
		TotalUnitsSold:  row.TotalUnitsSold,

		UnitsFromAds:  unitsFromAds,
		OrdersFromAds: ordersFromAds,
		SalesFromAds:  salesFromAds,

		OrganicSales:       organicSales,
		OrganicUnits:       organicUnits,
		OrganicSessions:    organicSessions,
		PctOrganicSales:    pctOrganicSales,
		PageViews:          row.PageViews,
		Sessions:           row.Sessions,
		ClicksFromAds:      clicksFromAds,
		CTR:                safeDiv(float64(clicksFromAds)*100, float64(impressionsFromAds)),
		CPC:                safeDiv(spendFromAds, float64(clicksFromAds)),
		Spend:              spendFromAds,
		ROAS:               safeDiv(salesFromAds, spendFromAds),
		ACOS:               safeDiv(spendFromAds, salesFromAds) * 100,
		TACOS:              safeDiv(spendFromAds, row.TotalSales) * 100,
		ConversionRate:     safeDiv(float64(row.TotalUnitsSold), float64(row.PageViews)) * 100,
		AdConversionRate:   safeDiv(float64(ordersFromAds), float64(clicksFromAds)) * 100,
		ImpressionsFromAds: impressionsFromAds,
	}

	return record, nil
}

// assignZone evaluates the eligibility rules in strict order; the first match
// wins and every row lands in exactly one zone.
func (c *Classifier) assignZone(conversionRate float64, impressionsFromAds, pageViews int64) domain.Zone {
	if conversionRate > optimalConversionFloor &&
		float64(impressionsFromAds) >= optimalPopulationFactor*c.stats.AvgImpressionsPerProduct &&
		float64(pageViews) >= optimalPopulationFactor*c.stats.AvgPageViewsPerProduct {
		return domain.ZoneOptimal
	}

	if conversionRate >= c.stats.AvgConversionRate {
		return domain.ZoneOpportunity
	}

	return domain.ZoneWorkInProgress
}

// safeDiv divides num by den, resolving a zero denominator to zero.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
