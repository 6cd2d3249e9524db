// backend-go/internal/repository/zone_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/andresuchdata/sellerpulse/backend-go/internal/domain"
)

// ErrDataUnavailable wraps repository failures that make the underlying
// warehouse unusable for the current run. Fatal to the pass that hits it.
var ErrDataUnavailable = errors.New("metrics warehouse unavailable")

// MetricsRepository exposes the read queries the zone engine consumes. Dates
// are calendar-day strings (YYYY-MM-DD), inclusive on both ends.
type MetricsRepository interface {
	// FetchRows returns one row per ASIN with organic and per-ad-source
	// metrics pre-joined for the window.
	FetchRows(ctx context.Context, accountID, marketplaceID, fromDate, toDate string) ([]domain.ProductPerformanceRow, error)

	// FetchBrandAggregate returns the sponsored-brand rollup for one brand,
	// or (nil, nil) when the brand has no sponsored-brand rows in the window.
	FetchBrandAggregate(ctx context.Context, accountID, marketplaceID, fromDate, toDate, brand string) (*domain.BrandAggregate, error)
}

// ZoneStore persists and serves classification records.
type ZoneStore interface {
	// Upsert inserts the record or, when its natural key already exists,
	// overwrites all computed fields while preserving id and created_at.
	// Safe to call repeatedly with identical input.
	Upsert(ctx context.Context, record *domain.ZoneClassificationRecord) error

	GetZoneSummary(ctx context.Context, filter domain.ZoneFilter) ([]domain.ZoneSummary, error)
	GetZoneItems(ctx context.Context, filter domain.ZoneFilter) ([]domain.ZoneClassificationRecord, int, error)
	GetAvailableDates(ctx context.Context, accountID, marketplaceID string, limit int) ([]time.Time, error)
}

// JobRepository tracks zone computation jobs.
type JobRepository interface {
	Create(ctx context.Context, job *domain.ComputationJob) error
	UpdateStatus(ctx context.Context, id int64, status domain.JobStatus, errorMessage string) error
	GetRecent(ctx context.Context, accountID string, limit int) ([]domain.ComputationJob, error)
}
