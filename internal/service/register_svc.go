package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/charatrack/charatrack/internal/model"
	"github.com/charatrack/charatrack/internal/youtube"
)

// MetadataSource resolves external identifiers into metadata records.
type MetadataSource interface {
	ChannelMetadata(ctx context.Context, channelID string) (*youtube.ChannelMetadata, error)
	VideoMetadata(ctx context.Context, videoID string) (*youtube.VideoMetadata, error)
}

// ChannelStore and VideoStore are the persistence operations registration
// needs. Satisfied by the repository types.
type ChannelStore interface {
	Upsert(ctx context.Context, ch *model.Channel) error
}

type VideoStore interface {
	Upsert(ctx context.Context, v *model.Video) error
}

// RegisterResult is the aggregate outcome of a bulk registration. Item
// failures never abort siblings; the caller reports the counts.
type RegisterResult struct {
	Succeeded int
	Total     int
}

func (r RegisterResult) AllSucceeded() bool {
	return r.Succeeded == r.Total
}

// RegisterService resolves metadata and upserts tagged channels and videos.
type RegisterService struct {
	source   MetadataSource
	channels ChannelStore
	videos   VideoStore
	cache    *CacheService
	logger   zerolog.Logger
}

func NewRegisterService(source MetadataSource, channels ChannelStore, videos VideoStore, cache *CacheService, logger zerolog.Logger) *RegisterService {
	return &RegisterService{
		source:   source,
		channels: channels,
		videos:   videos,
		cache:    cache,
		logger:   logger,
	}
}

// ParseTags splits a comma-separated tag string, trimming whitespace and
// dropping empties. Always returns a non-nil slice so the stored array and
// the wire shape are [] rather than null.
func ParseTags(csv string) []string {
	tags := []string{}
	for _, t := range strings.Split(csv, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// itemParts splits one [id_or_url, tags_csv] request item. The tags element
// is optional.
func itemParts(item []string) (id, tagsCSV string) {
	if len(item) > 0 {
		id = strings.TrimSpace(item[0])
	}
	if len(item) > 1 {
		tagsCSV = item[1]
	}
	return id, tagsCSV
}

// RegisterChannels registers each item in turn. Channel identifiers may be
// URL-form; the trailing path segment is used. Tags are fully replaced on
// re-registration.
func (s *RegisterService) RegisterChannels(ctx context.Context, items [][]string) RegisterResult {
	res := RegisterResult{Total: len(items)}

	for _, item := range items {
		id, tagsCSV := itemParts(item)
		if id == "" {
			s.logger.Warn().Msg("register channel: empty identifier")
			continue
		}
		id = youtube.ExtractChannelID(id)

		md, err := s.source.ChannelMetadata(ctx, id)
		if err != nil {
			s.logChannelFailure(id, err)
			continue
		}

		ch := &model.Channel{
			ChannelID: md.ChannelID,
			Title:     md.Title,
			CharTags:  ParseTags(tagsCSV),
		}
		if err := s.channels.Upsert(ctx, ch); err != nil {
			s.logger.Error().Err(err).Str("channel_id", id).Msg("register channel: upsert failed")
			continue
		}

		s.logger.Info().Str("channel_id", md.ChannelID).Str("title", md.Title).Msg("channel registered")
		res.Succeeded++
	}

	if res.Succeeded > 0 {
		s.cache.Invalidate(ctx, ChannelsCacheKey, VideosCacheKey, StatsCacheKey)
	}
	return res
}

// RegisterVideos registers each item in turn. The owning channel ID comes
// from the resolved metadata, so a video can be registered before its
// channel only if that channel row already exists.
func (s *RegisterService) RegisterVideos(ctx context.Context, items [][]string) RegisterResult {
	res := RegisterResult{Total: len(items)}

	for _, item := range items {
		id, tagsCSV := itemParts(item)
		if id == "" {
			s.logger.Warn().Msg("register video: empty identifier")
			continue
		}

		md, err := s.source.VideoMetadata(ctx, id)
		if err != nil {
			s.logVideoFailure(id, err)
			continue
		}

		v := &model.Video{
			VideoID:     md.VideoID,
			ChannelID:   md.ChannelID,
			Title:       md.Title,
			PublishedAt: md.PublishedAt,
			CharTags:    ParseTags(tagsCSV),
		}
		if err := s.videos.Upsert(ctx, v); err != nil {
			s.logger.Error().Err(err).Str("video_id", id).Msg("register video: upsert failed")
			continue
		}

		s.logger.Info().Str("video_id", md.VideoID).Str("title", md.Title).Msg("video registered")
		res.Succeeded++
	}

	if res.Succeeded > 0 {
		s.cache.Invalidate(ctx, VideosCacheKey, StatsCacheKey)
	}
	return res
}

func (s *RegisterService) logChannelFailure(id string, err error) {
	if errors.Is(err, youtube.ErrNotFound) {
		s.logger.Warn().Str("channel_id", id).Msg("register channel: not found")
		return
	}
	s.logger.Error().Err(err).Str("channel_id", id).Msg("register channel: metadata fetch failed")
}

func (s *RegisterService) logVideoFailure(id string, err error) {
	if errors.Is(err, youtube.ErrNotFound) {
		s.logger.Warn().Str("video_id", id).Msg("register video: not found")
		return
	}
	s.logger.Error().Err(err).Str("video_id", id).Msg("register video: metadata fetch failed")
}
