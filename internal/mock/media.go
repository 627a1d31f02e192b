package mock

import (
	"context"
	"os"
	"path/filepath"

	"github.com/streamhive/videos-ms-go/internal/model"
	"github.com/streamhive/videos-ms-go/internal/port"
)

// Prober implements the probe interface for tests.
type Prober struct {
	MetadataOut model.Metadata
	ProbeErr    error

	ProbeCalled bool
	ProbedPath  string
}

var _ port.Prober = (*Prober)(nil)

func (m *Prober) Probe(ctx context.Context, path string) (model.Metadata, error) {
	m.ProbeCalled = true
	m.ProbedPath = path
	if m.ProbeErr != nil {
		return model.Metadata{}, m.ProbeErr
	}
	return m.MetadataOut, nil
}

// Transcoder implements the transcode interface for tests. It writes small
// real files into outDir so upload and cleanup paths stay honest.
type Transcoder struct {
	ThumbnailErr error
	TranscodeErr error
	// TranscodeErrOnName fails only the encode of this quality.
	TranscodeErrOnName string
	// ProgressTicks is replayed through onProgress on every encode.
	ProgressTicks []float64

	ThumbnailCalled bool
	Transcoded      []string
}

var _ port.Transcoder = (*Transcoder)(nil)

func (m *Transcoder) Thumbnail(ctx context.Context, src, outDir string, durationSeconds float64) (string, error) {
	m.ThumbnailCalled = true
	if m.ThumbnailErr != nil {
		return "", m.ThumbnailErr
	}
	out := filepath.Join(outDir, "thumbnail.jpg")
	if err := os.WriteFile(out, []byte("jpeg"), 0o644); err != nil {
		return "", err
	}
	return out, nil
}

func (m *Transcoder) Transcode(ctx context.Context, src, outDir string, profile model.QualityProfile, durationSeconds float64, onProgress port.ProgressFunc) (string, error) {
	m.Transcoded = append(m.Transcoded, profile.Name)
	if m.TranscodeErr != nil {
		return "", m.TranscodeErr
	}
	if m.TranscodeErrOnName == profile.Name {
		return "", os.ErrInvalid
	}
	if onProgress != nil {
		for _, p := range m.ProgressTicks {
			onProgress(p)
		}
	}
	out := filepath.Join(outDir, profile.Name+".mp4")
	if err := os.WriteFile(out, []byte("mp4 "+profile.Name), 0o644); err != nil {
		return "", err
	}
	return out, nil
}
