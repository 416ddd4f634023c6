package model

// ChannelListResponse is the body of GET /channels.
type ChannelListResponse struct {
	Data    []ChannelEntry `json:"data"`
	Message string         `json:"message,omitempty"`
}

// VideoListResponse is the body of GET /videos.
type VideoListResponse struct {
	Data    []VideoEntry `json:"data"`
	Message string       `json:"message,omitempty"`
}

// StatsListResponse is the body of GET /stats.
type StatsListResponse struct {
	Data    []StatsEntry `json:"data"`
	Message string       `json:"message,omitempty"`
}

// RegisterRequest is the body of POST /register/channels and
// POST /register/videos. Each item is a [id_or_url, tags_csv] pair as sent
// by the spreadsheet client; the tags element may be omitted.
type RegisterRequest struct {
	Items [][]string `json:"items"`
}

// ActionResponse is the body of registration and daily-update endpoints.
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
