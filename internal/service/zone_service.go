package service

import (
	"context"
	"time"

	"github.com/andresuchdata/sellerpulse/backend-go/internal/cache"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/domain"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/repository"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/zone"
	"github.com/rs/zerolog/log"
)

// ZoneService serves the zone dashboard reads through the redis cache and
// exposes computation run triggering.
type ZoneService struct {
	store        repository.ZoneStore
	jobs         repository.JobRepository
	cache        cache.ZoneCache
	orchestrator *zone.Orchestrator
}

func NewZoneService(store repository.ZoneStore, jobs repository.JobRepository, cacheImpl cache.ZoneCache, orchestrator *zone.Orchestrator) *ZoneService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopZoneCache()
	}
	return &ZoneService{
		store:        store,
		jobs:         jobs,
		cache:        cacheImpl,
		orchestrator: orchestrator,
	}
}

func (s *ZoneService) GetSummary(ctx context.Context, filter domain.ZoneFilter) ([]domain.ZoneSummary, error) {
	if summaries, ok, err := s.cache.GetSummary(ctx, filter); err == nil && ok {
		return summaries, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("zones: cache get summary failed")
	}

	summaries, err := s.store.GetZoneSummary(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetSummary(ctx, filter, summaries); err != nil {
		log.Warn().Err(err).Msg("zones: cache set summary failed")
	}

	return summaries, nil
}

func (s *ZoneService) GetItems(ctx context.Context, filter domain.ZoneFilter) ([]domain.ZoneClassificationRecord, int, error) {
	return s.store.GetZoneItems(ctx, filter)
}

func (s *ZoneService) GetAvailableDates(ctx context.Context, accountID, marketplaceID string, limit int) ([]time.Time, error) {
	return s.store.GetAvailableDates(ctx, accountID, marketplaceID, limit)
}

func (s *ZoneService) GetRecentJobs(ctx context.Context, accountID string, limit int) ([]domain.ComputationJob, error) {
	return s.jobs.GetRecent(ctx, accountID, limit)
}

// RunComputation executes a zone computation run for the window and, when it
// succeeds, drops cached summaries so dashboards see the new classification.
func (s *ZoneService) RunComputation(ctx context.Context, accountID, marketplaceID, fromDate, toDate string) bool {
	ok := s.orchestrator.Run(ctx, accountID, marketplaceID, fromDate, toDate)
	if ok {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			log.Warn().Err(err).Msg("zones: cache invalidation after run failed")
		}
	}
	return ok
}
