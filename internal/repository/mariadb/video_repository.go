package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/streamhive/videos-ms-go/internal/db"
	"github.com/streamhive/videos-ms-go/internal/model"
	"github.com/streamhive/videos-ms-go/internal/port"
)

type VideoRepository struct {
	db *sql.DB
}

// compile-time check: *VideoRepository must satisfy port.VideoRepository
var _ port.VideoRepository = (*VideoRepository)(nil)

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	log.Printf("creating database record for video #%s, at status %q...", video.ID, video.Status)

	const query = `
      INSERT INTO videos
        (id, owner_id, title, original_filename, source_url, status, failure_message, thumbnail_url, duration_seconds, metadata, video_urls)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		video.ID, video.OwnerID, video.Title,
		video.OriginalFilename, video.SourceURL,
		video.Status, video.FailureMessage,
		video.ThumbnailURL, video.DurationSeconds,
		video.Metadata, video.VideoURLs,
	)
	if err != nil {
		return err
	}

	return nil
}

// UpdateStatus writes a status transition in a single statement. Optional
// columns only change when the caller provides them; failure_message is
// always written so a successful run clears an earlier attempt's message.
func (r *VideoRepository) UpdateStatus(ctx context.Context, id db.UUID, status model.VideoStatus, fields port.UpdateStatusFields) error {
	log.Printf("updating database record for video #%s, with status %q...", id, status)

	const query = `
      UPDATE videos
      SET
        status           = ?,
        thumbnail_url    = COALESCE(?, thumbnail_url),
        video_urls       = COALESCE(?, video_urls),
        metadata         = COALESCE(?, metadata),
        duration_seconds = COALESCE(?, duration_seconds),
        failure_message  = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		status,
		fields.ThumbnailURL,
		fields.VideoURLs,
		fields.Metadata,
		fields.DurationSeconds,
		fields.FailureMessage,
		id, // WHERE clause
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *VideoRepository) GetByID(ctx context.Context, ID db.UUID) (*model.Video, error) {
	log.Printf("fetching video #%s from the database...", ID)

	const query = `
      SELECT id, owner_id, title, original_filename, source_url, status, failure_message, thumbnail_url, duration_seconds, metadata, video_urls, created_at, updated_at
      FROM videos
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, ID)
	var video model.Video
	if err := row.Scan(
		&video.ID, &video.OwnerID, &video.Title,
		&video.OriginalFilename, &video.SourceURL,
		&video.Status, &video.FailureMessage,
		&video.ThumbnailURL, &video.DurationSeconds,
		&video.Metadata, &video.VideoURLs,
		&video.CreatedAt, &video.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &video, nil
}
