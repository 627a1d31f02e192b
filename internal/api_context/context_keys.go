package api_context

import (
	"context"

	"github.com/streamhive/videos-ms-go/internal/db"
)

type ctxKey string

const (
	// IDKey carries the video ID parsed from the request path.
	IDKey ctxKey = "id"
	// VideoIDKey carries the video ID of the pipeline run currently
	// executing, so every log line can be correlated to one video.
	VideoIDKey ctxKey = "videoID"
)

func IDFromContext(ctx context.Context) (db.UUID, bool) {
	id, ok := ctx.Value(IDKey).(db.UUID)
	return id, ok
}

// WithVideoID tags the context with the video being processed.
func WithVideoID(ctx context.Context, id db.UUID) context.Context {
	return context.WithValue(ctx, VideoIDKey, id)
}

func VideoIDFromContext(ctx context.Context) (db.UUID, bool) {
	id, ok := ctx.Value(VideoIDKey).(db.UUID)
	return id, ok
}
