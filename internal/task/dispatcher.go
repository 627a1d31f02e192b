package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/streamhive/videos-ms-go/internal/port"
)

// ErrDuplicateJob is returned when a processing job for the same video is
// already in the queue's registry.
var ErrDuplicateJob = errors.New("a processing job already exists for this video")

type Dispatcher struct {
	client *asynq.Client
	policy QueuePolicy
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string, policy QueuePolicy) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c, policy: policy}
}

func (d *Dispatcher) EnqueueProcessVideo(ctx context.Context, in port.ProcessVideoInput) (string, error) {
	t, err := NewProcessVideoTask(in)
	if err != nil {
		return "", err
	}

	// TaskID is the video ID so the job registry is queryable per video.
	info, err := d.client.EnqueueContext(ctx, t,
		asynq.Queue(QueueVideos),
		asynq.TaskID(in.VideoID.String()),
		asynq.MaxRetry(d.policy.MaxRetry()),
		asynq.Timeout(d.policy.Timeout),
		asynq.Retention(d.policy.Retention),
	)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return "", ErrDuplicateJob
		}
		return "", fmt.Errorf("could not enqueue processing job for video #%s: %w", in.VideoID, err)
	}
	return info.ID, nil
}

func (d *Dispatcher) Close() error {
	return d.client.Close()
}
