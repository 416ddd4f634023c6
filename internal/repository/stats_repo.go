package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/charatrack/charatrack/internal/model"
)

// dailyRunLockID keys the advisory lock that keeps daily-update runs
// mutually exclusive. Arbitrary but must be stable across processes.
const dailyRunLockID = 0x63686172 // "char"

type StatsRepo struct {
	pool *pgxpool.Pool
}

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// StatsRow is one row of the stats projection: every video, with zeroed
// stats when no stats row exists yet.
type StatsRow struct {
	VideoID    string
	VideoTitle string
	TotalViews int64
	DailyViews []int64
}

// StatsRun is the transactional scope of one daily run. All reads and
// writes share one transaction; nothing is visible until Commit.
type StatsRun interface {
	// TryLock takes the advisory lock guarding daily runs. Returns false
	// when another run currently holds it. The lock releases automatically
	// on commit or rollback.
	TryLock(ctx context.Context) (bool, error)
	// LoadAll returns the stored stats keyed by video ID.
	LoadAll(ctx context.Context) (map[string]model.VideoStats, error)
	// VideoIDs returns all tracked video IDs.
	VideoIDs(ctx context.Context) ([]string, error)
	// Upsert writes one video's refreshed stats. The row is replaced
	// wholesale: the window is materialized, not appended.
	Upsert(ctx context.Context, videoID string, totalViews int64, window []int64, updated time.Time) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// BeginRun opens the transaction a daily run commits or rolls back as a
// whole.
func (r *StatsRepo) BeginRun(ctx context.Context) (StatsRun, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &statsRun{tx: tx}, nil
}

type statsRun struct {
	tx pgx.Tx
}

func (s *statsRun) TryLock(ctx context.Context) (bool, error) {
	var locked bool
	err := s.tx.QueryRow(ctx, `SELECT pg_try_advisory_xact_lock($1)`, dailyRunLockID).Scan(&locked)
	return locked, err
}

func (s *statsRun) LoadAll(ctx context.Context) (map[string]model.VideoStats, error) {
	rows, err := s.tx.Query(ctx, `
		SELECT video_id, total_views, daily_views_last_30_days, last_updated
		FROM video_stats`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]model.VideoStats)
	for rows.Next() {
		var st model.VideoStats
		if err := rows.Scan(&st.VideoID, &st.TotalViews, &st.DailyViews, &st.LastUpdated); err != nil {
			return nil, err
		}
		stats[st.VideoID] = st
	}
	return stats, rows.Err()
}

func (s *statsRun) VideoIDs(ctx context.Context) ([]string, error) {
	rows, err := s.tx.Query(ctx, `SELECT video_id FROM videos ORDER BY video_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *statsRun) Upsert(ctx context.Context, videoID string, totalViews int64, window []int64, updated time.Time) error {
	query := `
		INSERT INTO video_stats (video_id, total_views, daily_views_last_30_days, last_updated)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (video_id) DO UPDATE
		SET total_views = EXCLUDED.total_views,
		    daily_views_last_30_days = EXCLUDED.daily_views_last_30_days,
		    last_updated = EXCLUDED.last_updated`

	_, err := s.tx.Exec(ctx, query, videoID, totalViews, window, updated)
	return err
}

func (s *statsRun) Commit(ctx context.Context) error {
	return s.tx.Commit(ctx)
}

func (s *statsRun) Rollback(ctx context.Context) error {
	return s.tx.Rollback(ctx)
}

// ListWithVideos returns the stats projection: every video (outer join, so
// videos with no stats row appear with zeroes), ordered by descending total
// views with null stats at the tail.
func (r *StatsRepo) ListWithVideos(ctx context.Context) ([]StatsRow, error) {
	query := `
		SELECT v.video_id, v.title,
		       COALESCE(vs.total_views, 0),
		       COALESCE(vs.daily_views_last_30_days, '{}')
		FROM videos v
		LEFT JOIN video_stats vs ON v.video_id = vs.video_id
		ORDER BY vs.total_views DESC NULLS LAST`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StatsRow
	for rows.Next() {
		var row StatsRow
		if err := rows.Scan(&row.VideoID, &row.VideoTitle, &row.TotalViews, &row.DailyViews); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
