package model

import (
	"time"

	"github.com/streamhive/videos-ms-go/internal/db"
)

type VideoStatus string

const (
	VideoStatusPending    VideoStatus = "pending"
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusPublished  VideoStatus = "published"
	VideoStatusFailed     VideoStatus = "failed"
)

// Video is the record driven by the processing pipeline. It is created as
// "pending" at upload time and only the worker moves it past that.
type Video struct {
	ID               db.UUID     `json:"id"`
	OwnerID          db.UUID     `json:"owner_id"`
	Title            string      `json:"title"`
	OriginalFilename string      `json:"original_filename"`
	SourceURL        string      `json:"source_url"`
	Status           VideoStatus `json:"status"`
	FailureMessage   *string     `json:"failure_message,omitempty"`
	ThumbnailURL     *string     `json:"thumbnail_url,omitempty"`
	DurationSeconds  *float64    `json:"duration_seconds,omitempty"`
	Metadata         *Metadata   `json:"metadata,omitempty"`
	VideoURLs        VideoURLs   `json:"video_urls,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}
