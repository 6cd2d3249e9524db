// backend-go/internal/zone/orchestrator.go
package zone

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/andresuchdata/sellerpulse/backend-go/internal/domain"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/notify"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// Orchestrator drives one zone computation run: it fetches the window's rows
// once, then executes the two-pass classification at ACCOUNT level and again
// at PRODUCT level, persisting every record through the store. Each level gets
// a fresh brand cache; only the ACCOUNT pass blends sponsored-brand
// aggregates. Runs for different accounts may execute concurrently, but the
// enclosing scheduler never runs the same account/window twice at once.
type Orchestrator struct {
	metrics  repository.MetricsRepository
	store    repository.ZoneStore
	jobs     repository.JobRepository
	notifier notify.Notifier
}

func NewOrchestrator(metrics repository.MetricsRepository, store repository.ZoneStore, jobs repository.JobRepository, notifier notify.Notifier) *Orchestrator {
	if notifier == nil {
		notifier = notify.NewLogNotifier()
	}
	return &Orchestrator{
		metrics:  metrics,
		store:    store,
		jobs:     jobs,
		notifier: notifier,
	}
}

// Run computes and persists performance zones for the account and window.
// It returns false when the run fails or there are no rows to classify; the
// caller marks the enclosing job as failed. Partial progress from an earlier
// level is retained, upserts are per-record.
func (o *Orchestrator) Run(ctx context.Context, accountID, marketplaceID, fromDate, toDate string) bool {
	job := &domain.ComputationJob{
		AccountID:     accountID,
		MarketplaceID: marketplaceID,
		FromDate:      fromDate,
		ToDate:        toDate,
		Status:        domain.JobStatusPending,
	}
	if err := o.jobs.Create(ctx, job); err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("zones: failed to create computation job")
		return false
	}

	if err := o.jobs.UpdateStatus(ctx, job.ID, domain.JobStatusRunning, ""); err != nil {
		log.Warn().Err(err).Int64("job_id", job.ID).Msg("zones: failed to mark job running")
	}

	rows, err := o.metrics.FetchRows(ctx, accountID, marketplaceID, fromDate, toDate)
	if err != nil {
		o.fail(ctx, job, fmt.Errorf("fetch rows: %w", err))
		return false
	}
	if len(rows) == 0 {
		o.fail(ctx, job, fmt.Errorf("no performance rows for %s between %s and %s", accountID, fromDate, toDate))
		return false
	}

	// ACCOUNT first; its failure aborts before the PRODUCT pass is attempted.
	for _, level := range []domain.Level{domain.LevelAccount, domain.LevelProduct} {
		if err := o.runPass(ctx, job, level, rows); err != nil {
			o.fail(ctx, job, fmt.Errorf("%s pass: %w", level, err))
			return false
		}
	}

	if err := o.jobs.UpdateStatus(ctx, job.ID, domain.JobStatusCompleted, ""); err != nil {
		log.Warn().Err(err).Int64("job_id", job.ID).Msg("zones: failed to mark job completed")
	}

	log.Info().
		Str("account_id", accountID).
		Str("marketplace_id", marketplaceID).
		Str("from", fromDate).
		Str("to", toDate).
		Int("rows", len(rows)).
		Msg("zones: computation run completed")

	return true
}

// runPass executes the two-pass algorithm for one level: population averages
// over the full row set first, then per-row classification against those
// frozen averages. The same cache instance serves both passes.
func (o *Orchestrator) runPass(ctx context.Context, job *domain.ComputationJob, level domain.Level, rows []domain.ProductPerformanceRow) error {
	log.Info().
		Int64("job_id", job.ID).
		Str("level", string(level)).
		Int("rows", len(rows)).
		Msg("zones: starting classification pass")

	cache := NewBrandCache(func(ctx context.Context, brand string) (*domain.BrandAggregate, error) {
		return o.metrics.FetchBrandAggregate(ctx, job.AccountID, job.MarketplaceID, job.FromDate, job.ToDate, brand)
	})

	stats, err := ComputeStatistics(ctx, rows, cache, level.BlendsBrand())
	if err != nil {
		return fmt.Errorf("population statistics: %w", err)
	}

	classifier := NewClassifier(job.AccountID, job.MarketplaceID, level, job.ToDate, stats, cache)

	var stored, skipped int
	for _, row := range rows {
		record, err := classifier.Classify(ctx, row)
		if errors.Is(err, ErrMissingASIN) {
			skipped++
			log.Warn().
				Int64("job_id", job.ID).
				Str("level", string(level)).
				Str("sku", row.SKU).
				Msg("zones: skipping row without asin")
			continue
		}
		if err != nil {
			return fmt.Errorf("classify %s: %w", row.ASIN, err)
		}

		if err := o.store.Upsert(ctx, record); err != nil {
			return fmt.Errorf("store %s: %w", record.ASIN, err)
		}
		stored++
	}

	log.Info().
		Int64("job_id", job.ID).
		Str("level", string(level)).
		Int("stored", stored).
		Int("skipped", skipped).
		Int("brands_seen", cache.Len()).
		Float64("avg_conversion_rate", stats.AvgConversionRate).
		Msg("zones: classification pass completed")

	return nil
}

func (o *Orchestrator) fail(ctx context.Context, job *domain.ComputationJob, err error) {
	log.Error().Err(err).
		Int64("job_id", job.ID).
		Str("account_id", job.AccountID).
		Msg("zones: computation run failed")

	if updateErr := o.jobs.UpdateStatus(ctx, job.ID, domain.JobStatusError, err.Error()); updateErr != nil {
		log.Warn().Err(updateErr).Int64("job_id", job.ID).Msg("zones: failed to mark job errored")
	}

	o.notifier.Notify(ctx, notify.ErrorReport{
		Message: fmt.Sprintf("zone computation failed: %v", err),
		Stack:   string(debug.Stack()),
		Context: map[string]string{
			"account_id":     job.AccountID,
			"marketplace_id": job.MarketplaceID,
			"from_date":      job.FromDate,
			"to_date":        job.ToDate,
			"job_id":         fmt.Sprintf("%d", job.ID),
		},
		ReportedAt: time.Now(),
	})
}
