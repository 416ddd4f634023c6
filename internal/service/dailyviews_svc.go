package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/charatrack/charatrack/internal/model"
	"github.com/charatrack/charatrack/internal/repository"
	"github.com/charatrack/charatrack/internal/youtube"
)

// ErrUpdateRunning is returned when another daily-update run holds the
// advisory lock. The caller reports failure without touching data.
var ErrUpdateRunning = errors.New("daily update already running")

// StatsSource supplies current cumulative view counts for a batch of videos.
type StatsSource interface {
	VideoStatistics(ctx context.Context, videoIDs []string) (map[string]int64, error)
}

// StatsStore opens the transactional scope a daily run operates in.
type StatsStore interface {
	BeginRun(ctx context.Context) (repository.StatsRun, error)
}

// DailyViewsService reconciles the live YouTube counters against the stored
// per-video rolling windows. One run is all-or-nothing: every write happens
// inside a single transaction that commits only after all batches succeed.
type DailyViewsService struct {
	store  StatsStore
	source StatsSource
	cache  *CacheService
	logger zerolog.Logger
}

func NewDailyViewsService(store StatsStore, source StatsSource, cache *CacheService, logger zerolog.Logger) *DailyViewsService {
	return &DailyViewsService{store: store, source: source, cache: cache, logger: logger}
}

// dailyDelta is the daily increase between two cumulative observations.
// The external counter is authoritative; when it moves backwards (correction
// or video deletion) the delta clamps to zero, never negative.
func dailyDelta(previousTotal, currentTotal int64) int64 {
	if d := currentTotal - previousTotal; d > 0 {
		return d
	}
	return 0
}

// nextWindow prepends the new delta and truncates to the window capacity.
// Entries past the cap are dropped, not archived.
func nextWindow(delta int64, previous []int64) []int64 {
	w := make([]int64, 0, len(previous)+1)
	w = append(w, delta)
	w = append(w, previous...)
	if len(w) > model.WindowSize {
		w = w[:model.WindowSize]
	}
	return w
}

// batchIDs splits ids into chunks of at most size.
func batchIDs(ids []string, size int) [][]string {
	var batches [][]string
	for len(ids) > size {
		batches = append(batches, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		batches = append(batches, ids)
	}
	return batches
}

// Run executes one daily update and returns the number of videos updated.
// Videos the API does not report (deleted or private) are left untouched.
// A concurrent run returns ErrUpdateRunning; any other failure rolls back
// the whole run.
func (s *DailyViewsService) Run(ctx context.Context) (int, error) {
	start := time.Now()

	run, err := s.store.BeginRun(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin daily run: %w", err)
	}
	defer run.Rollback(ctx)

	locked, err := run.TryLock(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return 0, ErrUpdateRunning
	}

	existing, err := run.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load stored stats: %w", err)
	}

	ids, err := run.VideoIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("load video ids: %w", err)
	}
	if len(ids) == 0 {
		s.logger.Info().Msg("daily run: no videos registered")
		return 0, run.Commit(ctx)
	}

	today := time.Now().UTC()
	updated := 0

	for _, batch := range batchIDs(ids, youtube.MaxBatchSize) {
		counts, err := s.source.VideoStatistics(ctx, batch)
		if err != nil {
			return 0, fmt.Errorf("fetch statistics batch: %w", err)
		}

		for _, id := range batch {
			current, ok := counts[id]
			if !ok {
				continue
			}

			prev := existing[id]
			delta := dailyDelta(prev.TotalViews, current)
			window := nextWindow(delta, prev.DailyViews)

			if err := run.Upsert(ctx, id, current, window, today); err != nil {
				return 0, fmt.Errorf("upsert stats for %s: %w", id, err)
			}
			updated++
		}
	}

	if err := run.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit daily run: %w", err)
	}

	s.cache.Invalidate(ctx, StatsCacheKey)

	s.logger.Info().
		Int("videos", updated).
		Int("tracked", len(ids)).
		Dur("duration", time.Since(start)).
		Msg("daily run complete")

	return updated, nil
}
