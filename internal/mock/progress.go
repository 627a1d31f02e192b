package mock

import (
	"context"
	"sync"

	"github.com/streamhive/videos-ms-go/internal/db"
	"github.com/streamhive/videos-ms-go/internal/port"
)

// ProgressStore implements the progress store interface for tests.
type ProgressStore struct {
	GetErr error

	mu     sync.Mutex
	writes []port.Progress
}

var _ port.ProgressStore = (*ProgressStore)(nil)

func (m *ProgressStore) Set(ctx context.Context, videoID db.UUID, stage string, percent float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = append(m.writes, port.Progress{Stage: stage, Percent: percent})
}

func (m *ProgressStore) Get(ctx context.Context, videoID db.UUID) (*port.Progress, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.writes) == 0 {
		return nil, nil
	}
	last := m.writes[len(m.writes)-1]
	return &last, nil
}

// Writes returns a copy of everything recorded so far.
func (m *ProgressStore) Writes() []port.Progress {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]port.Progress, len(m.writes))
	copy(out, m.writes)
	return out
}
