package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migrations is an append-only list. Executed statements are recorded in the
// migration ledger table; on startup only the missing tail is applied.
var migrations = []string{
	`CREATE TABLE channels (
channel_id TEXT PRIMARY KEY,
title TEXT NOT NULL,
char_tags TEXT[] NOT NULL DEFAULT '{}'
)`,
	`CREATE TABLE videos (
video_id TEXT PRIMARY KEY,
channel_id TEXT NOT NULL REFERENCES channels(channel_id),
title TEXT NOT NULL,
published_at DATE,
char_tags TEXT[] NOT NULL DEFAULT '{}'
)`,
	`CREATE TABLE video_stats (
video_id TEXT PRIMARY KEY REFERENCES videos(video_id),
total_views BIGINT NOT NULL DEFAULT 0,
daily_views_last_30_days BIGINT[] NOT NULL DEFAULT '{}',
last_updated DATE NOT NULL
)`,
	`CREATE INDEX video_stats_total_views_idx ON video_stats (total_views DESC)`,
}

// Migrate brings the schema up to date.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS migration
("id" SERIAL PRIMARY KEY, "query" TEXT)`)
	if err != nil {
		return fmt.Errorf("create migration table: %w", err)
	}

	rows, err := pool.Query(ctx, `SELECT query FROM migration ORDER BY id`)
	if err != nil {
		return err
	}
	existing := []string{}
	for rows.Next() {
		var query string
		if err := rows.Scan(&query); err != nil {
			rows.Close()
			return err
		}
		existing = append(existing, query)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	missing, err := compareMigrations(migrations, existing)
	if err != nil {
		return err
	}

	for _, query := range missing {
		if _, err := pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
		if _, err := pool.Exec(ctx, `INSERT INTO migration (query) VALUES ($1)`, query); err != nil {
			return fmt.Errorf("record migration: %w", err)
		}
	}

	return nil
}

func compareMigrations(wanted, existing []string) ([]string, error) {
	needed := []string{}
	if len(wanted) < len(existing) {
		return nil, fmt.Errorf("migration ledger has more entries than known migrations")
	}

	for i, want := range wanted {
		switch {
		case i >= len(existing):
			needed = append(needed, want)
		case want != existing[i]:
			return nil, fmt.Errorf("incompatible migration at position %d", i)
		}
	}

	return needed, nil
}
