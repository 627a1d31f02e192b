package port

import (
	"context"
	"encoding/json"
	"time"

	"github.com/streamhive/videos-ms-go/internal/db"
)

type JobState string

const (
	JobStateNotFound  JobState = "not_found"
	JobStateWaiting   JobState = "waiting"
	JobStateActive    JobState = "active"
	JobStateCompleted JobState = "completed"
	JobStateFailed    JobState = "failed"
)

// JobStatus is the operator-facing view of one processing job. Attempts
// counts deliveries that actually started: a job still waiting for its first
// (or next) delivery only counts the executions already behind it.
type JobStatus struct {
	State       JobState        `json:"state"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"max_attempts"`
	LastError   string          `json:"last_error,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
	NextRetryAt time.Time       `json:"next_retry_at,omitzero"`
	CompletedAt time.Time       `json:"completed_at,omitzero"`
}

// JobInspector queries the queue's job registry by video ID.
type JobInspector interface {
	JobStatus(ctx context.Context, videoID db.UUID) (*JobStatus, error)
}
