package mock

import (
	"context"

	"github.com/streamhive/videos-ms-go/internal/port"
)

// Dispatcher implements the task dispatcher interface for tests.
type Dispatcher struct {
	EnqueueErr error

	EnqueueCalled bool
	EnqueuedInput port.ProcessVideoInput
}

var _ port.TaskDispatcher = (*Dispatcher)(nil)

func (m *Dispatcher) EnqueueProcessVideo(ctx context.Context, in port.ProcessVideoInput) (string, error) {
	m.EnqueueCalled = true
	m.EnqueuedInput = in
	if m.EnqueueErr != nil {
		return "", m.EnqueueErr
	}
	return in.VideoID.String(), nil
}
