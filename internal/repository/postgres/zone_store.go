package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andresuchdata/sellerpulse/backend-go/internal/domain"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type zoneStore struct {
	db *sqlx.DB
}

func NewZoneStore(db *sqlx.DB) repository.ZoneStore {
	return &zoneStore{db: db}
}

// Upsert writes one classification record as a single conditional statement so
// concurrent writers targeting the same natural key cannot produce duplicates
// or lost updates. created_at and the surrogate id survive updates.
func (s *zoneStore) Upsert(ctx context.Context, record *domain.ZoneClassificationRecord) error {
	query := `
        INSERT INTO performance_zones (
            account_id, marketplace_id, level, zone_date, zone, asin,
            sku, product_name, product_image, category, subcategory,
            category_rank, subcategory_rank, brand,
            total_sales, total_units_sold,
            units_from_ads, orders_from_ads, sales_from_ads,
            organic_sales, organic_units, organic_sessions, percentage_organic_sales,
            page_views, sessions, clicks_from_ads,
            ctr, cpc, spend, roas, acos, tacos,
            conversion_rate, ad_conversion_rate, impressions,
            created_at, updated_at
        ) VALUES (
            :account_id, :marketplace_id, :level, :zone_date, :zone, :asin,
            :sku, :product_name, :product_image, :category, :subcategory,
            :category_rank, :subcategory_rank, :brand,
            :total_sales, :total_units_sold,
            :units_from_ads, :orders_from_ads, :sales_from_ads,
            :organic_sales, :organic_units, :organic_sessions, :percentage_organic_sales,
            :page_views, :sessions, :clicks_from_ads,
            :ctr, :cpc, :spend, :roas, :acos, :tacos,
            :conversion_rate, :ad_conversion_rate, :impressions,
            NOW(), NOW()
        )
        ON CONFLICT (account_id, marketplace_id, level, zone_date, zone, asin)
        DO UPDATE SET
            sku = EXCLUDED.sku,
            product_name = EXCLUDED.product_name,
            product_image = EXCLUDED.product_image,
            category = EXCLUDED.category,
            subcategory = EXCLUDED.subcategory,
            category_rank = EXCLUDED.category_rank,
            subcategory_rank = EXCLUDED.subcategory_rank,
            brand = EXCLUDED.brand,
            total_sales = EXCLUDED.total_sales,
            total_units_sold = EXCLUDED.total_units_sold,
            units_from_ads = EXCLUDED.units_from_ads,
            orders_from_ads = EXCLUDED.orders_from_ads,
            sales_from_ads = EXCLUDED.sales_from_ads,
            organic_sales = EXCLUDED.organic_sales,
            organic_units = EXCLUDED.organic_units,
            organic_sessions = EXCLUDED.organic_sessions,
            percentage_organic_sales = EXCLUDED.percentage_organic_sales,
            page_views = EXCLUDED.page_views,
            sessions = EXCLUDED.sessions,
            clicks_from_ads = EXCLUDED.clicks_from_ads,
            ctr = EXCLUDED.ctr,
            cpc = EXCLUDED.cpc,
            spend = EXCLUDED.spend,
            roas = EXCLUDED.roas,
            acos = EXCLUDED.acos,
            tacos = EXCLUDED.tacos,
            conversion_rate = EXCLUDED.conversion_rate,
            ad_conversion_rate = EXCLUDED.ad_conversion_rate,
            impressions = EXCLUDED.impressions,
            updated_at = NOW()
    `

	if _, err := sqlx.NamedExecContext(ctx, s.db, query, record); err != nil {
		return fmt.Errorf("upsert performance zone for %s/%s: %w", record.ASIN, record.Zone, err)
	}

	return nil
}

func (s *zoneStore) GetZoneSummary(ctx context.Context, filter domain.ZoneFilter) ([]domain.ZoneSummary, error) {
	query := `
        SELECT zone, COUNT(*) as count
        FROM performance_zones
        WHERE 1=1
    `

	conditions, args := buildZoneFilterConditions(filter)
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " GROUP BY zone ORDER BY zone"

	var summaries []domain.ZoneSummary
	if err := s.db.SelectContext(ctx, &summaries, query, args...); err != nil {
		return nil, fmt.Errorf("error getting zone summary: %w", err)
	}

	return summaries, nil
}

func (s *zoneStore) GetZoneItems(ctx context.Context, filter domain.ZoneFilter) ([]domain.ZoneClassificationRecord, int, error) {
	countQuery := `
        SELECT COUNT(*)
        FROM performance_zones
        WHERE 1=1
    `

	query := `
        SELECT
            id, account_id, marketplace_id, level, zone_date, zone, asin,
            sku, product_name, product_image, category, subcategory,
            category_rank, subcategory_rank, brand,
            total_sales, total_units_sold,
            units_from_ads, orders_from_ads, sales_from_ads,
            organic_sales, organic_units, organic_sessions, percentage_organic_sales,
            page_views, sessions, clicks_from_ads,
            ctr, cpc, spend, roas, acos, tacos,
            conversion_rate, ad_conversion_rate, impressions,
            created_at, updated_at
        FROM performance_zones
        WHERE 1=1
    `

	conditions, args := buildZoneFilterConditions(filter)
	if len(conditions) > 0 {
		whereClause := " AND " + strings.Join(conditions, " AND ")
		query += whereClause
		countQuery += whereClause
	}

	var total int
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("error counting zone items: %w", err)
	}

	validSortFields := map[string]string{
		"asin":          "asin",
		"total_sales":   "total_sales",
		"organic_sales": "organic_sales",
		"spend":         "spend",
		"roas":          "roas",
		"acos":          "acos",
		"tacos":         "tacos",
		"impressions":   "impressions",
		"page_views":    "page_views",
	}
	sortCol, ok := validSortFields[filter.SortField]
	if !ok {
		sortCol = "total_sales"
	}
	sortDir := "DESC"
	if strings.EqualFold(filter.SortDir, "asc") {
		sortDir = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s, asin ASC", sortCol, sortDir)

	argCounter := len(args) + 1
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
		args = append(args, filter.PageSize, offset)
	}

	items := make([]domain.ZoneClassificationRecord, 0, filter.PageSize)
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("error getting zone items: %w", err)
	}

	log.Debug().
		Int("items", len(items)).
		Int("total", total).
		Str("zone", string(filter.Zone)).
		Str("level", string(filter.Level)).
		Msg("zones: items fetched")

	return items, total, nil
}

func (s *zoneStore) GetAvailableDates(ctx context.Context, accountID, marketplaceID string, limit int) ([]time.Time, error) {
	if limit <= 0 {
		limit = 30
	}

	query := `
        SELECT DISTINCT zone_date
        FROM performance_zones
        WHERE account_id = $1 AND marketplace_id = $2
        ORDER BY zone_date DESC
        LIMIT $3
    `

	var dates []time.Time
	if err := s.db.SelectContext(ctx, &dates, query, accountID, marketplaceID, limit); err != nil {
		return nil, fmt.Errorf("error getting available zone dates: %w", err)
	}

	return dates, nil
}

func buildZoneFilterConditions(filter domain.ZoneFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	argCounter := 1

	add := func(clause string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(clause, argCounter))
		args = append(args, value)
		argCounter++
	}

	if filter.AccountID != "" {
		add("account_id = $%d", filter.AccountID)
	}
	if filter.MarketplaceID != "" {
		add("marketplace_id = $%d", filter.MarketplaceID)
	}
	if filter.Level != "" {
		add("level = $%d", string(filter.Level))
	}
	if filter.ZoneDate != "" {
		add("zone_date = $%d::date", filter.ZoneDate)
	}
	if filter.Zone != "" {
		add("zone = $%d", string(filter.Zone))
	}
	if filter.Brand != "" {
		add("brand = $%d", filter.Brand)
	}

	return conditions, args
}
