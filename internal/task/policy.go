package task

import (
	"time"

	"github.com/hibiken/asynq"
	"github.com/streamhive/videos-ms-go/internal/config"
)

// QueuePolicy gathers every knob of the delivery contract in one explicit
// struct instead of ambient queue configuration.
type QueuePolicy struct {
	// MaxAttempts bounds total deliveries, first execution included; once
	// spent the job is archived, not dropped.
	MaxAttempts int
	// Timeout is the hard wall-clock budget for one whole pipeline run.
	Timeout time.Duration
	// RetryBaseDelay is the first backoff step; it doubles per attempt.
	RetryBaseDelay time.Duration
	// Retention keeps terminal jobs inspectable by ID.
	Retention time.Duration
}

func PolicyFromSettings(cfg *config.Settings) QueuePolicy {
	return QueuePolicy{
		MaxAttempts:    cfg.JobMaxAttempts,
		Timeout:        cfg.JobTimeout,
		RetryBaseDelay: cfg.JobRetryBaseDelay,
		Retention:      7 * 24 * time.Hour,
	}
}

// MaxRetry translates the attempt budget into asynq's retry count, which
// only counts deliveries after the first one.
func (p QueuePolicy) MaxRetry() int {
	if p.MaxAttempts <= 1 {
		return 0
	}
	return p.MaxAttempts - 1
}

// RetryDelayFunc returns the exponential backoff schedule asynq applies
// between deliveries: base, 2*base, 4*base, ... capped at 15 minutes.
func (p QueuePolicy) RetryDelayFunc() asynq.RetryDelayFunc {
	const maxDelay = 15 * time.Minute
	return func(n int, err error, t *asynq.Task) time.Duration {
		d := p.RetryBaseDelay << n
		if d > maxDelay || d <= 0 {
			return maxDelay
		}
		return d
	}
}
