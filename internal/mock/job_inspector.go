package mock

import (
	"context"

	"github.com/streamhive/videos-ms-go/internal/db"
	"github.com/streamhive/videos-ms-go/internal/port"
)

// JobInspector implements the job registry query interface for tests.
type JobInspector struct {
	StatusOut *port.JobStatus
	StatusErr error

	StatusCalled bool
	QueriedID    db.UUID
}

var _ port.JobInspector = (*JobInspector)(nil)

func (m *JobInspector) JobStatus(ctx context.Context, videoID db.UUID) (*port.JobStatus, error) {
	m.StatusCalled = true
	m.QueriedID = videoID
	if m.StatusErr != nil {
		return nil, m.StatusErr
	}
	if m.StatusOut == nil {
		return &port.JobStatus{State: port.JobStateNotFound}, nil
	}
	return m.StatusOut, nil
}
