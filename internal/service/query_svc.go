package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/charatrack/charatrack/internal/model"
	"github.com/charatrack/charatrack/internal/repository"
)

// QueryService builds the three read projections. Results are served
// cache-aside from Redis when available.
type QueryService struct {
	channels *repository.ChannelRepo
	videos   *repository.VideoRepo
	stats    *repository.StatsRepo
	cache    *CacheService
	logger   zerolog.Logger
}

func NewQueryService(channels *repository.ChannelRepo, videos *repository.VideoRepo, stats *repository.StatsRepo, cache *CacheService, logger zerolog.Logger) *QueryService {
	return &QueryService{
		channels: channels,
		videos:   videos,
		stats:    stats,
		cache:    cache,
		logger:   logger,
	}
}

// Channels lists every registered channel.
func (s *QueryService) Channels(ctx context.Context) ([]model.ChannelEntry, error) {
	if cached, ok := getCached[[]model.ChannelEntry](ctx, s.cache, ChannelsCacheKey, s.logger); ok {
		return cached, nil
	}

	channels, err := s.channels.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]model.ChannelEntry, 0, len(channels))
	for _, ch := range channels {
		entries = append(entries, model.ChannelEntry{
			ChannelID: ch.ChannelID,
			Title:     ch.Title,
			CharTags:  nonNilTags(ch.CharTags),
		})
	}

	s.setCached(ctx, ChannelsCacheKey, entries, ListCacheTTL)
	return entries, nil
}

// Videos lists tagged videos joined with their channel titles.
func (s *QueryService) Videos(ctx context.Context) ([]model.VideoEntry, error) {
	if cached, ok := getCached[[]model.VideoEntry](ctx, s.cache, VideosCacheKey, s.logger); ok {
		return cached, nil
	}

	videos, err := s.videos.ListTagged(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]model.VideoEntry, 0, len(videos))
	for _, v := range videos {
		v.CharTags = nonNilTags(v.CharTags)
		entries = append(entries, v)
	}

	s.setCached(ctx, VideosCacheKey, entries, ListCacheTTL)
	return entries, nil
}

// Stats lists every video with its cumulative total and the sum of its
// rolling window, descending by total views. Videos without a stats row
// report zeroes and sort at the tail.
func (s *QueryService) Stats(ctx context.Context) ([]model.StatsEntry, error) {
	if cached, ok := getCached[[]model.StatsEntry](ctx, s.cache, StatsCacheKey, s.logger); ok {
		return cached, nil
	}

	rows, err := s.stats.ListWithVideos(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]model.StatsEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, model.StatsEntry{
			VideoID:         row.VideoID,
			VideoTitle:      row.VideoTitle,
			TotalViews:      row.TotalViews,
			ViewsLast30Days: sumWindow(row.DailyViews),
		})
	}

	s.setCached(ctx, StatsCacheKey, entries, StatsCacheTTL)
	return entries, nil
}

// sumWindow is the derived 30-day aggregate: the sum of all deltas
// currently in the rolling window.
func sumWindow(window []int64) int64 {
	var total int64
	for _, d := range window {
		total += d
	}
	return total
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// listCache is the slice of CacheService the read path needs.
type listCache interface {
	GetList(ctx context.Context, key string) ([]byte, error)
	Invalidate(ctx context.Context, keys ...string)
}

func getCached[T any](ctx context.Context, cache listCache, key string, logger zerolog.Logger) (T, bool) {
	var out T
	data, err := cache.GetList(ctx, key)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("cache: read failed")
		return out, false
	}
	if data == nil {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		// A corrupt entry would otherwise fail on every read until the TTL
		// expires. Drop it so the next read repopulates.
		logger.Warn().Err(err).Str("key", key).Msg("cache: corrupt entry dropped")
		cache.Invalidate(ctx, key)
		return out, false
	}
	return out, true
}

func (s *QueryService) setCached(ctx context.Context, key string, data interface{}, ttl time.Duration) {
	if err := s.cache.SetList(ctx, key, data, ttl); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache: write failed")
	}
}
