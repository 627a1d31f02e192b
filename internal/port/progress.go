package port

import (
	"context"

	"github.com/streamhive/videos-ms-go/internal/db"
)

// Progress is the last known advancement of a pipeline run.
type Progress struct {
	Stage   string  `json:"stage"`
	Percent float64 `json:"percent"`
}

// ProgressStore records percent-complete updates per video so the status
// endpoint can report them. Writes are best-effort: a store failure never
// fails the pipeline.
type ProgressStore interface {
	Set(ctx context.Context, videoID db.UUID, stage string, percent float64)
	Get(ctx context.Context, videoID db.UUID) (*Progress, error)
}
