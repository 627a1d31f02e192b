package mock

import (
	"context"

	"github.com/streamhive/videos-ms-go/internal/db"
	"github.com/streamhive/videos-ms-go/internal/model"
	"github.com/streamhive/videos-ms-go/internal/port"
)

// StatusWrite records one UpdateStatus call.
type StatusWrite struct {
	ID     db.UUID
	Status model.VideoStatus
	Fields port.UpdateStatusFields
}

// VideoRepo implements repository operations for tests.
type VideoRepo struct {
	VideoRecord *model.Video

	GetErr    error
	CreateErr error
	UpdateErr error
	// UpdateErrOnStatus fails only the write transitioning to this status.
	UpdateErrOnStatus model.VideoStatus

	GetCalled bool
	Created   *model.Video
	Updates   []StatusWrite
}

var _ port.VideoRepository = (*VideoRepo)(nil)

func (m *VideoRepo) Create(ctx context.Context, video *model.Video) error {
	m.Created = video
	return m.CreateErr
}

func (m *VideoRepo) GetByID(ctx context.Context, id db.UUID) (*model.Video, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.VideoRecord, nil
}

func (m *VideoRepo) UpdateStatus(ctx context.Context, id db.UUID, status model.VideoStatus, fields port.UpdateStatusFields) error {
	m.Updates = append(m.Updates, StatusWrite{ID: id, Status: status, Fields: fields})
	if m.UpdateErr != nil && (m.UpdateErrOnStatus == "" || m.UpdateErrOnStatus == status) {
		return m.UpdateErr
	}
	return nil
}

// LastStatus returns the status of the most recent write, if any.
func (m *VideoRepo) LastStatus() (model.VideoStatus, bool) {
	if len(m.Updates) == 0 {
		return "", false
	}
	return m.Updates[len(m.Updates)-1].Status, true
}
