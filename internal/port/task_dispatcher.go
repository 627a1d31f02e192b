package port

import "context"

// TaskDispatcher enqueues processing jobs onto the durable work queue.
type TaskDispatcher interface {
	// EnqueueProcessVideo submits one processing job and returns its queue ID.
	// Submission is not idempotent at the call site: the caller is responsible
	// for at-most-once submission per upload.
	EnqueueProcessVideo(ctx context.Context, in ProcessVideoInput) (string, error)
}
