package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andresuchdata/sellerpulse/backend-go/internal/domain"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type metricsRepository struct {
	db *sqlx.DB
}

func NewMetricsRepository(db *sqlx.DB) repository.MetricsRepository {
	return &metricsRepository{db: db}
}

func (r *metricsRepository) FetchRows(ctx context.Context, accountID, marketplaceID, fromDate, toDate string) ([]domain.ProductPerformanceRow, error) {
	query := `
        WITH organic AS (
            SELECT
                asin,
                MAX(sku) AS sku,
                SUM(ordered_product_sales) AS total_sales,
                SUM(units_ordered) AS total_units_sold,
                SUM(total_order_items) AS unique_orders,
                SUM(page_views) AS page_views,
                SUM(sessions) AS sessions
            FROM sales_traffic_daily
            WHERE account_id = $1
              AND marketplace_id = $2
              AND report_date BETWEEN $3::date AND $4::date
            GROUP BY asin
        ),
        sp AS (
            SELECT
                advertised_asin AS asin,
                SUM(impressions) AS impressions,
                SUM(clicks) AS clicks,
                SUM(spend) AS spend,
                SUM(sales) AS sales,
                SUM(units_sold) AS units,
                SUM(orders) AS orders
            FROM sponsored_products_daily
            WHERE account_id = $1
              AND marketplace_id = $2
              AND report_date BETWEEN $3::date AND $4::date
            GROUP BY advertised_asin
        ),
        sd AS (
            SELECT
                advertised_asin AS asin,
                SUM(impressions) AS impressions,
                SUM(clicks) AS clicks,
                SUM(spend) AS spend,
                SUM(sales) AS sales,
                SUM(units_sold) AS units,
                SUM(orders) AS orders
            FROM sponsored_display_daily
            WHERE account_id = $1
              AND marketplace_id = $2
              AND report_date BETWEEN $3::date AND $4::date
            GROUP BY advertised_asin
        )
        SELECT
            o.asin,
            COALESCE(o.sku, '') AS sku,
            COALESCE(c.brand, '') AS brand,
            COALESCE(c.category, '') AS category,
            COALESCE(c.subcategory, '') AS subcategory,
            COALESCE(c.category_rank, 0) AS category_rank,
            COALESCE(c.subcategory_rank, 0) AS subcategory_rank,
            COALESCE(c.product_name, '') AS product_name,
            COALESCE(c.image_url, '') AS product_image,
            COALESCE(o.total_sales, 0) AS total_sales,
            COALESCE(o.total_units_sold, 0) AS total_units_sold,
            COALESCE(o.unique_orders, 0) AS unique_orders,
            COALESCE(o.page_views, 0) AS page_views,
            COALESCE(o.sessions, 0) AS sessions,
            COALESCE(sp.impressions, 0) AS sp_impressions,
            COALESCE(sp.clicks, 0) AS sp_clicks,
            COALESCE(sp.spend, 0) AS sp_spend,
            COALESCE(sp.sales, 0) AS sp_sales,
            COALESCE(sp.units, 0) AS sp_units,
            COALESCE(sp.orders, 0) AS sp_orders,
            COALESCE(sd.impressions, 0) AS sd_impressions,
            COALESCE(sd.clicks, 0) AS sd_clicks,
            COALESCE(sd.spend, 0) AS sd_spend,
            COALESCE(sd.sales, 0) AS sd_sales,
            COALESCE(sd.units, 0) AS sd_units,
            COALESCE(sd.orders, 0) AS sd_orders
        FROM organic o
        LEFT JOIN sp ON sp.asin = o.asin
        LEFT JOIN sd ON sd.asin = o.asin
        LEFT JOIN catalog_items c
            ON c.asin = o.asin
           AND c.account_id = $1
           AND c.marketplace_id = $2
        ORDER BY o.asin
    `

	var rows []domain.ProductPerformanceRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, accountID, marketplaceID, fromDate, toDate); err != nil {
		log.Error().Err(err).
			Str("account_id", accountID).
			Str("marketplace_id", marketplaceID).
			Str("from", fromDate).
			Str("to", toDate).
			Msg("zones: failed to fetch product performance rows")
		return nil, fmt.Errorf("%w: fetch performance rows: %v", repository.ErrDataUnavailable, err)
	}

	log.Debug().
		Int("rows", len(rows)).
		Str("account_id", accountID).
		Str("from", fromDate).
		Str("to", toDate).
		Msg("zones: performance rows fetched")

	return rows, nil
}

func (r *metricsRepository) FetchBrandAggregate(ctx context.Context, accountID, marketplaceID, fromDate, toDate, brand string) (*domain.BrandAggregate, error) {
	query := `
        SELECT
            brand,
            SUM(impressions) AS impressions,
            SUM(clicks) AS clicks,
            SUM(spend) AS spend,
            SUM(sales) AS sales
        FROM sponsored_brands_daily
        WHERE account_id = $1
          AND marketplace_id = $2
          AND report_date BETWEEN $3::date AND $4::date
          AND brand = $5
        GROUP BY brand
    `

	var agg domain.BrandAggregate
	err := r.db.GetContext(ctx, &agg, query, accountID, marketplaceID, fromDate, toDate, brand)
	if errors.Is(err, sql.ErrNoRows) {
		// The brand ran no sponsored-brand placements in the window. Callers
		// must skip blending, not treat this as a zero aggregate.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetch brand aggregate for %q: %v", repository.ErrDataUnavailable, brand, err)
	}

	return &agg, nil
}
