package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// UpdateWorker optionally triggers daily runs from inside the process when
// no external scheduler is available. Disabled unless an interval is
// configured. The advisory lock in the run itself keeps the worker and the
// HTTP trigger from ever overlapping.
type UpdateWorker struct {
	svc      *DailyViewsService
	interval time.Duration
	logger   zerolog.Logger
}

func NewUpdateWorker(svc *DailyViewsService, interval time.Duration, logger zerolog.Logger) *UpdateWorker {
	return &UpdateWorker{
		svc:      svc,
		interval: interval,
		logger:   logger,
	}
}

// Start runs the trigger loop until ctx is cancelled. The first run happens
// a full interval after startup; an external scheduler normally owns the
// cadence, so the worker never fires on boot.
func (w *UpdateWorker) Start(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("update-worker: starting")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			w.logger.Info().Msg("update-worker: stopping")
			return
		}
	}
}

func (w *UpdateWorker) tick(ctx context.Context) {
	updated, err := w.svc.Run(ctx)
	if err != nil {
		if errors.Is(err, ErrUpdateRunning) {
			w.logger.Info().Msg("update-worker: run already in progress, skipping tick")
			return
		}
		w.logger.Error().Err(err).Msg("update-worker: run failed")
		return
	}
	w.logger.Info().Int("videos", updated).Msg("update-worker: tick complete")
}
