package port

import (
	"context"

	"github.com/streamhive/videos-ms-go/internal/model"
)

// Prober extracts metadata from a local video file.
type Prober interface {
	Probe(ctx context.Context, path string) (model.Metadata, error)
}

// ProgressFunc receives percent-complete updates during an encode.
type ProgressFunc func(percent float64)

// Transcoder produces local renditions and thumbnails from a local source
// file. Both calls are one-shot: they block until the external process exits
// and honour context cancellation by killing it.
type Transcoder interface {
	// Thumbnail captures a single 1280x720 JPEG frame at 10% of the video's
	// duration and returns its local path.
	Thumbnail(ctx context.Context, src, outDir string, durationSeconds float64) (string, error)
	// Transcode re-encodes src to the profile's exact dimensions and bitrate
	// (H.264/AAC, mp4) and returns the local output path. durationSeconds is
	// the probed source duration, used to turn encode timestamps into percents.
	Transcode(ctx context.Context, src, outDir string, profile model.QualityProfile, durationSeconds float64, onProgress ProgressFunc) (string, error)
}
