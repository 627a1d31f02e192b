package mock

import (
	"context"

	"github.com/streamhive/videos-ms-go/internal/port"
)

// Processor implements the pipeline interface for tests.
type Processor struct {
	ResultOut  *port.ProcessingResult
	ProcessErr error

	ProcessCalled bool
	ProcessedIn   port.ProcessVideoInput
}

var _ port.VideoProcessor = (*Processor)(nil)

func (m *Processor) ProcessVideo(ctx context.Context, in port.ProcessVideoInput) (*port.ProcessingResult, error) {
	m.ProcessCalled = true
	m.ProcessedIn = in
	if m.ProcessErr != nil {
		return nil, m.ProcessErr
	}
	return m.ResultOut, nil
}
