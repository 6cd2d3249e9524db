// backend-go/internal/zone/stats.go
package zone

import (
	"context"

	"github.com/andresuchdata/sellerpulse/backend-go/internal/domain"
)

// ComputeStatistics runs the first pass over the complete row set and derives
// the population averages used as classification thresholds. The averages must
// come from every row, not a subset: classification of each row depends on the
// same constants. When blendBrand is set, each row's ad impressions include the
// brand aggregate looked up through the cache.
func ComputeStatistics(ctx context.Context, rows []domain.ProductPerformanceRow, cache *BrandCache, blendBrand bool) (domain.PopulationStatistics, error) {
	var stats domain.PopulationStatistics

	var totalOrders, totalPageViews, totalImpressions int64
	for _, row := range rows {
		impressions := row.SPImpressions + row.SDImpressions
		if blendBrand {
			agg, err := cache.Get(ctx, row.Brand)
			if err != nil {
				return stats, err
			}
			if agg != nil {
				impressions += agg.Impressions
			}
		}

		totalOrders += row.UniqueOrders
		totalPageViews += row.PageViews
		totalImpressions += impressions
	}

	if totalPageViews > 0 {
		stats.AvgConversionRate = float64(totalOrders) * 100 / float64(totalPageViews)
	}
	if count := len(rows); count > 0 {
		stats.AvgImpressionsPerProduct = float64(totalImpressions) / float64(count)
		stats.AvgPageViewsPerProduct = float64(totalPageViews) / float64(count)
	}

	return stats, nil
}
