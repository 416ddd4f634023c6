package model

import "time"

// Video represents a tracked video owned by a registered channel.
type Video struct {
	VideoID     string     `json:"video_id"`
	ChannelID   string     `json:"channel_id"`
	Title       string     `json:"title"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CharTags    []string   `json:"char_tags"`
}

// VideoEntry is the wire projection for one video in GET /videos,
// joined with the owning channel's title.
type VideoEntry struct {
	VideoID      string   `json:"video_id"`
	Title        string   `json:"title"`
	CharTags     []string `json:"char_tags"`
	ChannelTitle string   `json:"channel_title"`
}
