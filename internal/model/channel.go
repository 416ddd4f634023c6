package model

// Channel represents a tracked YouTube channel with its character tags.
type Channel struct {
	ChannelID string   `json:"channel_id"`
	Title     string   `json:"title"`
	CharTags  []string `json:"char_tags"`
}

// ChannelEntry is the wire projection for one channel in GET /channels.
type ChannelEntry struct {
	ChannelID string   `json:"channel_id"`
	Title     string   `json:"title"`
	CharTags  []string `json:"char_tags"`
}
