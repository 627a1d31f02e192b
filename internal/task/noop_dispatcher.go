package task

import (
	"context"

	"github.com/streamhive/videos-ms-go/internal/port"
)

type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueProcessVideo(ctx context.Context, in port.ProcessVideoInput) (string, error) {
	return in.VideoID.String(), nil
}
