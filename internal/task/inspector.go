package task

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"
	"github.com/streamhive/videos-ms-go/internal/db"
	"github.com/streamhive/videos-ms-go/internal/port"
)

// Inspector answers status queries against the queue's job registry.
type Inspector struct {
	ins *asynq.Inspector
}

// compile-time check
var _ port.JobInspector = (*Inspector)(nil)

func NewInspector(addr, password string) *Inspector {
	return &Inspector{
		ins: asynq.NewInspector(asynq.RedisClientOpt{Addr: addr, Password: password}),
	}
}

func (i *Inspector) JobStatus(ctx context.Context, videoID db.UUID) (*port.JobStatus, error) {
	info, err := i.ins.GetTaskInfo(QueueVideos, videoID.String())
	if err != nil {
		if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
			return &port.JobStatus{State: port.JobStateNotFound}, nil
		}
		return nil, err
	}

	state := mapTaskState(info.State)
	return &port.JobStatus{
		State:       state,
		Attempts:    countAttempts(state, info.Retried),
		MaxAttempts: info.MaxRetry + 1,
		LastError:   info.LastErr,
		Result:      info.Result,
		NextRetryAt: info.NextProcessAt,
		CompletedAt: info.CompletedAt,
	}, nil
}

// countAttempts turns asynq's retry counter into a delivery count. Retried
// only covers finished redeliveries, so a waiting job has exactly that many
// executions behind it, while an active or terminal one is one delivery
// further along.
func countAttempts(state port.JobState, retried int) int {
	if state == port.JobStateWaiting {
		return retried
	}
	return retried + 1
}

// mapTaskState collapses asynq's states into the operator-facing ones. An
// archived task has exhausted its retries: that is the terminal failed state.
func mapTaskState(s asynq.TaskState) port.JobState {
	switch s {
	case asynq.TaskStateActive:
		return port.JobStateActive
	case asynq.TaskStateCompleted:
		return port.JobStateCompleted
	case asynq.TaskStateArchived:
		return port.JobStateFailed
	default:
		// pending, scheduled, retry, aggregating
		return port.JobStateWaiting
	}
}
