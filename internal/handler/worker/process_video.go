package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/streamhive/videos-ms-go/internal/db"
	"github.com/streamhive/videos-ms-go/internal/media"
	"github.com/streamhive/videos-ms-go/internal/port"
	"github.com/streamhive/videos-ms-go/internal/task"
)

// ProcessVideoHandler handles a process-video task. It converts the incoming
// task payload to the input expected by the processing pipeline, delegates the
// call, and records the pipeline's result on the task so the status endpoint
// can surface it. Errors that a retry cannot fix are wrapped with
// asynq.SkipRetry so the job archives immediately.
func ProcessVideoHandler(ctx context.Context, t *asynq.Task, svc port.VideoProcessor) error {
	p, err := task.ParseProcessVideoPayload(t)
	if err != nil {
		log.Printf("❌  Invalid process-video payload: %v", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	videoID, err := uuid.Parse(p.VideoID)
	if err != nil {
		log.Printf("❌  Invalid video ID %q: %v", p.VideoID, err)
		return fmt.Errorf("invalid video ID %q: %w", p.VideoID, asynq.SkipRetry)
	}
	ownerID, err := uuid.Parse(p.OwnerID)
	if err != nil {
		log.Printf("❌  Invalid owner ID %q: %v", p.OwnerID, err)
		return fmt.Errorf("invalid owner ID %q: %w", p.OwnerID, asynq.SkipRetry)
	}

	in := port.ProcessVideoInput{
		VideoID:          db.UUID(videoID),
		SourceURL:        p.SourceURL,
		OwnerID:          db.UUID(ownerID),
		OriginalFilename: p.OriginalFilename,
	}
	res, err := svc.ProcessVideo(ctx, in)
	if err != nil {
		if errors.Is(err, media.ErrUnreadableSource) {
			log.Printf("❌  Video #%s has an unreadable source, not retrying: %v", videoID, err)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		log.Printf("❌  Failed to process video #%s: %v", videoID, err)
		return err
	}

	if w := t.ResultWriter(); w != nil {
		data, err := json.Marshal(res)
		if err != nil {
			log.Printf("⚠️  Could not marshal result for video #%s: %v", videoID, err)
		} else if _, err := w.Write(data); err != nil {
			log.Printf("⚠️  Could not record result for video #%s: %v", videoID, err)
		}
	}

	log.Printf("✅  Successfully processed video #%s", videoID)
	return nil
}
