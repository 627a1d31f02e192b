package port

import (
	"context"

	"github.com/streamhive/videos-ms-go/internal/db"
	"github.com/streamhive/videos-ms-go/internal/model"
)

// UpdateStatusFields carries the optional columns written together with a
// status transition. Nil fields are left untouched.
type UpdateStatusFields struct {
	ThumbnailURL    *string
	VideoURLs       model.VideoURLs
	Metadata        *model.Metadata
	DurationSeconds *float64
	FailureMessage  *string
}

// VideoRepository defines persistence operations for video records.
// Status transitions are last-write-wins: a duplicate delivery that finishes
// second simply overwrites the first run's equivalent output.
type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, id db.UUID) (*model.Video, error)
	UpdateStatus(ctx context.Context, id db.UUID, status model.VideoStatus, fields UpdateStatusFields) error
}
