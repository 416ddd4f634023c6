package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// MaxBatchSize is the YouTube Data API limit on IDs per videos.list call.
const MaxBatchSize = 50

// ErrNotFound means the API answered but had no item for the given ID.
// Transport and quota errors are returned as-is and are never ErrNotFound.
var ErrNotFound = errors.New("youtube: no matching item")

// ChannelMetadata is the resolved snippet for a channel ID.
type ChannelMetadata struct {
	ChannelID string
	Title     string
}

// VideoMetadata is the resolved snippet for a video ID.
type VideoMetadata struct {
	VideoID     string
	ChannelID   string
	Title       string
	PublishedAt *time.Time
}

// Client wraps the YouTube Data API v3 service.
type Client struct {
	svc *youtube.Service
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ChannelMetadata resolves a channel ID into its title.
func (c *Client) ChannelMetadata(ctx context.Context, channelID string) (*ChannelMetadata, error) {
	resp, err := c.svc.Channels.List([]string{"snippet"}).Id(channelID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("channel lookup: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, ErrNotFound
	}

	item := resp.Items[0]
	return &ChannelMetadata{
		ChannelID: item.Id,
		Title:     item.Snippet.Title,
	}, nil
}

// VideoMetadata resolves a video ID into its title, owning channel and
// publication date.
func (c *Client) VideoMetadata(ctx context.Context, videoID string) (*VideoMetadata, error) {
	resp, err := c.svc.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("video lookup: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, ErrNotFound
	}

	item := resp.Items[0]
	md := &VideoMetadata{
		VideoID:   item.Id,
		ChannelID: item.Snippet.ChannelId,
		Title:     item.Snippet.Title,
	}
	if ts, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
		md.PublishedAt = &ts
	}
	return md, nil
}

// VideoStatistics fetches the cumulative view count for up to MaxBatchSize
// videos in one call. IDs missing from the response are absent from the map.
func (c *Client) VideoStatistics(ctx context.Context, videoIDs []string) (map[string]int64, error) {
	if len(videoIDs) == 0 {
		return map[string]int64{}, nil
	}
	if len(videoIDs) > MaxBatchSize {
		return nil, fmt.Errorf("statistics batch of %d exceeds limit of %d", len(videoIDs), MaxBatchSize)
	}

	resp, err := c.svc.Videos.
		List([]string{"statistics"}).
		Id(strings.Join(videoIDs, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("statistics lookup: %w", err)
	}

	counts := make(map[string]int64, len(resp.Items))
	for _, item := range resp.Items {
		if item.Statistics == nil {
			continue
		}
		counts[item.Id] = int64(item.Statistics.ViewCount)
	}
	return counts, nil
}

// ExtractChannelID accepts either a bare channel ID or a channel URL and
// returns the trailing path segment ("https://youtube.com/channel/UC123"
// becomes "UC123").
func ExtractChannelID(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "youtube.com/channel/") {
		return s
	}
	s = strings.TrimRight(s, "/")
	parts := strings.Split(s, "/")
	return parts[len(parts)-1]
}
