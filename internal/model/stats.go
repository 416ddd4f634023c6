package model

import "time"

// WindowSize is the capacity of the rolling daily-views window.
// Older entries are dropped once a video has this many daily deltas.
const WindowSize = 30

// VideoStats is the materialized per-video rolling window. It is derived
// entirely from the live YouTube counter and overwritten on each daily run.
type VideoStats struct {
	VideoID     string    `json:"video_id"`
	TotalViews  int64     `json:"total_views"`
	DailyViews  []int64   `json:"daily_views_last_30_days"`
	LastUpdated time.Time `json:"last_updated"`
}

// StatsEntry is the wire projection for one video in GET /stats. Videos
// without a stats row report zero totals.
type StatsEntry struct {
	VideoID         string `json:"video_id"`
	VideoTitle      string `json:"video_title"`
	TotalViews      int64  `json:"total_views"`
	ViewsLast30Days int64  `json:"views_last_30_days"`
}
