package port

import (
	"context"

	"github.com/streamhive/videos-ms-go/internal/db"
	"github.com/streamhive/videos-ms-go/internal/model"
)

// ProcessVideoInput is the immutable work unit for one processing attempt.
// The queue may redeliver it; the processor must be safe to re-run.
type ProcessVideoInput struct {
	VideoID          db.UUID `json:"video_id"`
	SourceURL        string  `json:"source_url"`
	OwnerID          db.UUID `json:"owner_id"`
	OriginalFilename string  `json:"original_filename"`
}

// ProcessingResult is produced when every rendition was published.
type ProcessingResult struct {
	VideoID      db.UUID         `json:"video_id"`
	Metadata     model.Metadata  `json:"metadata"`
	ThumbnailURL string          `json:"thumbnail_url"`
	VideoURLs    model.VideoURLs `json:"video_urls"`
	Status       string          `json:"status"`
}

// VideoProcessor drives the end-to-end pipeline for one job: download,
// probe, thumbnail, transcode every quality, upload, publish.
type VideoProcessor interface {
	ProcessVideo(ctx context.Context, in ProcessVideoInput) (*ProcessingResult, error)
}
