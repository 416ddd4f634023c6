package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/charatrack/charatrack/internal/model"
)

type ChannelRepo struct {
	pool *pgxpool.Pool
}

func NewChannelRepo(pool *pgxpool.Pool) *ChannelRepo {
	return &ChannelRepo{pool: pool}
}

// Upsert inserts a channel or, on conflict, refreshes its title and fully
// replaces its tags. The latest registration always wins.
func (r *ChannelRepo) Upsert(ctx context.Context, ch *model.Channel) error {
	query := `
		INSERT INTO channels (channel_id, title, char_tags)
		VALUES ($1, $2, $3)
		ON CONFLICT (channel_id) DO UPDATE
		SET title = EXCLUDED.title, char_tags = EXCLUDED.char_tags`

	_, err := r.pool.Exec(ctx, query, ch.ChannelID, ch.Title, ch.CharTags)
	return err
}

// ListAll returns every registered channel.
func (r *ChannelRepo) ListAll(ctx context.Context) ([]model.Channel, error) {
	query := `
		SELECT channel_id, title, char_tags
		FROM channels
		ORDER BY channel_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []model.Channel
	for rows.Next() {
		var ch model.Channel
		if err := rows.Scan(&ch.ChannelID, &ch.Title, &ch.CharTags); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}
