package progress

import (
	"context"

	"github.com/streamhive/videos-ms-go/internal/db"
	"github.com/streamhive/videos-ms-go/internal/port"
)

// Noop is used when Redis is not configured: progress is simply not recorded.
type Noop struct{}

var _ port.ProgressStore = (*Noop)(nil)

func NewNoop() *Noop { return &Noop{} }

func (n *Noop) Set(ctx context.Context, videoID db.UUID, stage string, percent float64) {}

func (n *Noop) Get(ctx context.Context, videoID db.UUID) (*port.Progress, error) {
	return nil, nil
}
