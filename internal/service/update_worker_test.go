package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/charatrack/charatrack/internal/repository"
)

// countingStatsStore hands out a fresh recording run per tick and counts
// how many runs were started.
type countingStatsStore struct {
	begins atomic.Int32
}

func (s *countingStatsStore) BeginRun(ctx context.Context) (repository.StatsRun, error) {
	s.begins.Add(1)
	return newFakeStatsRun(nil, nil), nil
}

func TestUpdateWorker_StopsOnContextCancel(t *testing.T) {
	store := &countingStatsStore{}
	worker := NewUpdateWorker(newRunService(store, &fakeCounts{}), time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
	if n := store.begins.Load(); n != 0 {
		t.Errorf("runs before first interval = %d, want 0", n)
	}
}

func TestUpdateWorker_TicksTriggerRuns(t *testing.T) {
	store := &countingStatsStore{}
	worker := NewUpdateWorker(newRunService(store, &fakeCounts{}), 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for store.begins.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()
	<-done

	if store.begins.Load() == 0 {
		t.Error("worker never triggered a run")
	}
}
