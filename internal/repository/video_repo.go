package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/charatrack/charatrack/internal/model"
)

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

// Upsert inserts a video or, on conflict, refreshes its metadata and fully
// replaces its tags.
func (r *VideoRepo) Upsert(ctx context.Context, v *model.Video) error {
	query := `
		INSERT INTO videos (video_id, channel_id, title, published_at, char_tags)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (video_id) DO UPDATE
		SET channel_id = EXCLUDED.channel_id,
		    title = EXCLUDED.title,
		    published_at = EXCLUDED.published_at,
		    char_tags = EXCLUDED.char_tags`

	_, err := r.pool.Exec(ctx, query, v.VideoID, v.ChannelID, v.Title, v.PublishedAt, v.CharTags)
	return err
}

// ListTagged returns videos with at least one tag, joined with the owning
// channel's title. Untagged videos are tracked for stats but not listed.
func (r *VideoRepo) ListTagged(ctx context.Context) ([]model.VideoEntry, error) {
	query := `
		SELECT v.video_id, v.title, v.char_tags, c.title AS channel_title
		FROM videos v
		JOIN channels c ON v.channel_id = c.channel_id
		WHERE cardinality(v.char_tags) > 0
		ORDER BY v.video_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []model.VideoEntry
	for rows.Next() {
		var v model.VideoEntry
		if err := rows.Scan(&v.VideoID, &v.Title, &v.CharTags, &v.ChannelTitle); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}
