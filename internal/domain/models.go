// backend-go/internal/domain/models.go
package domain

import "time"

// ProductPerformanceRow is one ASIN's pre-joined organic and ad metrics for a
// date window, as returned by the metrics repository.
type ProductPerformanceRow struct {
	ASIN            string  `json:"asin" db:"asin"`
	SKU             string  `json:"sku" db:"sku"`
	Brand           string  `json:"brand" db:"brand"`
	Category        string  `json:"category" db:"category"`
	Subcategory     string  `json:"subcategory" db:"subcategory"`
	CategoryRank    int64   `json:"category_rank" db:"category_rank"`
	SubcategoryRank int64   `json:"subcategory_rank" db:"subcategory_rank"`
	ProductName     string  `json:"product_name" db:"product_name"`
	ProductImage    string  `json:"product_image" db:"product_image"`
	TotalSales      float64 `json:"total_sales" db:"total_sales"`
	TotalUnitsSold  int64   `json:"total_units_sold" db:"total_units_sold"`
	UniqueOrders    int64   `json:"unique_orders" db:"unique_orders"`
	PageViews       int64   `json:"page_views" db:"page_views"`
	Sessions        int64   `json:"sessions" db:"sessions"`

	// Sponsored Products rollup
	SPImpressions int64   `json:"sp_impressions" db:"sp_impressions"`
	SPClicks      int64   `json:"sp_clicks" db:"sp_clicks"`
	SPSpend       float64 `json:"sp_spend" db:"sp_spend"`
	SPSales       float64 `json:"sp_sales" db:"sp_sales"`
	SPUnits       int64   `json:"sp_units" db:"sp_units"`
	SPOrders      int64   `json:"sp_orders" db:"sp_orders"`

	// Sponsored Display rollup
	SDImpressions int64   `json:"sd_impressions" db:"sd_impressions"`
	SDClicks      int64   `json:"sd_clicks" db:"sd_clicks"`
	SDSpend       float64 `json:"sd_spend" db:"sd_spend"`
	SDSales       float64 `json:"sd_sales" db:"sd_sales"`
	SDUnits       int64   `json:"sd_units" db:"sd_units"`
	SDOrders      int64   `json:"sd_orders" db:"sd_orders"`
}

// BrandAggregate is the sponsored-brand rollup for a single brand over a window.
// A nil *BrandAggregate means the brand had no sponsored-brand activity at all,
// which is distinct from an aggregate with zero values.
type BrandAggregate struct {
	Brand       string  `json:"brand" db:"brand"`
	Impressions int64   `json:"impressions" db:"impressions"`
	Clicks      int64   `json:"clicks" db:"clicks"`
	Spend       float64 `json:"spend" db:"spend"`
	Sales       float64 `json:"sales" db:"sales"`
}

// PopulationStatistics holds the population-wide averages computed in the first
// pass. They are frozen before any classification decision is made.
type PopulationStatistics struct {
	AvgConversionRate        float64 `json:"avg_conversion_rate"`
	AvgImpressionsPerProduct float64 `json:"avg_impressions_per_product"`
	AvgPageViewsPerProduct   float64 `json:"avg_page_views_per_product"`
}

// ZoneClassificationRecord is the persisted outcome of classifying one ASIN.
// Natural key: (account_id, marketplace_id, level, zone_date, zone, asin).
type ZoneClassificationRecord struct {
	ID            int64  `json:"id" db:"id"`
	AccountID     string `json:"account_id" db:"account_id"`
	MarketplaceID string `json:"marketplace_id" db:"marketplace_id"`
	Level         Level  `json:"level" db:"level"`
	ZoneDate      string `json:"zone_date" db:"zone_date"`
	Zone          Zone   `json:"zone" db:"zone"`
	ASIN          string `json:"asin" db:"asin"`

	SKU             string  `json:"sku" db:"sku"`
	ProductName     string  `json:"product_name" db:"product_name"`
	ProductImage    string  `json:"product_image" db:"product_image"`
	Category        string  `json:"category" db:"category"`
	Subcategory     string  `json:"subcategory" db:"subcategory"`
	CategoryRank    int64   `json:"category_rank" db:"category_rank"`
	SubcategoryRank int64   `json:"subcategory_rank" db:"subcategory_rank"`
	Brand           string  `json:"brand" db:"brand"`
	TotalSales      float64 `json:"total_sales" db:"total_sales"`
	TotalUnitsSold  int64   `json:"total_units_sold" db:"total_units_sold"`

	UnitsFromAds  int64   `json:"units_from_ads" db:"units_from_ads"`
	OrdersFromAds int64   `json:"orders_from_ads" db:"orders_from_ads"`
	SalesFromAds  float64 `json:"sales_from_ads" db:"sales_from_ads"`

	OrganicSales       float64 `json:"organic_sales" db:"organic_sales"`
	OrganicUnits       int64   `json:"organic_units" db:"organic_units"`
	OrganicSessions    int64   `json:"organic_sessions" db:"organic_sessions"`
	PctOrganicSales    float64 `json:"percentage_organic_sales" db:"percentage_organic_sales"`
	PageViews          int64   `json:"page_views" db:"page_views"`
	Sessions           int64   `json:"sessions" db:"sessions"`
	ClicksFromAds      int64   `json:"clicks_from_ads" db:"clicks_from_ads"`
	CTR                float64 `json:"ctr" db:"ctr"`
	CPC                float64 `json:"cpc" db:"cpc"`
	Spend              float64 `json:"spend" db:"spend"`
	ROAS               float64 `json:"roas" db:"roas"`
	ACOS               float64 `json:"acos" db:"acos"`
	TACOS              float64 `json:"tacos" db:"tacos"`
	ConversionRate     float64 `json:"conversion_rate" db:"conversion_rate"`
	AdConversionRate   float64 `json:"ad_conversion_rate" db:"ad_conversion_rate"`
	ImpressionsFromAds int64   `json:"impressions" db:"impressions"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ZoneSummary is the per-zone record count for a window and level.
type ZoneSummary struct {
	Zone  Zone `json:"zone" db:"zone"`
	Count int  `json:"count" db:"count"`
}

// ZoneFilter represents filters for zone dashboard queries.
type ZoneFilter struct {
	AccountID     string `json:"account_id"`
	MarketplaceID string `json:"marketplace_id"`
	ZoneDate      string `json:"zone_date"`
	Level         Level  `json:"level"`
	Zone          Zone   `json:"zone"`
	Brand         string `json:"brand"`
	Page          int    `json:"page"`
	PageSize      int    `json:"page_size"`
	SortField     string `json:"sort_field"`
	SortDir       string `json:"sort_dir"`
}

// ComputationJob tracks a single zone computation run for an account/window.
type ComputationJob struct {
	ID            int64      `json:"id" db:"id"`
	AccountID     string     `json:"account_id" db:"account_id"`
	MarketplaceID string     `json:"marketplace_id" db:"marketplace_id"`
	FromDate      string     `json:"from_date" db:"from_date"`
	ToDate        string     `json:"to_date" db:"to_date"`
	Status        JobStatus  `json:"status" db:"status"`
	ErrorMessage  string     `json:"error_message" db:"error_message"`
	StartedAt     time.Time  `json:"started_at" db:"started_at"`
	CompletedAt   *time.Time `json:"completed_at" db:"completed_at"`
}
