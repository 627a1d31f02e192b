package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/streamhive/videos-ms-go/internal/db"
	"github.com/streamhive/videos-ms-go/internal/media"
	"github.com/streamhive/videos-ms-go/internal/mock"
	"github.com/streamhive/videos-ms-go/internal/port"
	"github.com/streamhive/videos-ms-go/internal/task"
)

func newProcessTask(t *testing.T, in port.ProcessVideoInput) *asynq.Task {
	t.Helper()
	tk, err := task.NewProcessVideoTask(in)
	if err != nil {
		t.Fatalf("could not build task: %v", err)
	}
	return tk
}

func TestProcessVideoHandler_InvalidPayload(t *testing.T) {
	svc := &mock.Processor{}
	tk := asynq.NewTask(task.TypeProcessVideo, []byte("not json"))

	err := ProcessVideoHandler(context.Background(), tk, svc)
	if err == nil {
		t.Fatal("expected error for invalid payload")
	}
	if !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("expected SkipRetry for a malformed payload, got %v", err)
	}
	if svc.ProcessCalled {
		t.Error("service should not be called on invalid payload")
	}
}

func TestProcessVideoHandler_InvalidID(t *testing.T) {
	svc := &mock.Processor{}
	tk := asynq.NewTask(task.TypeProcessVideo, []byte(`{"video_id":"invalid","owner_id":"invalid"}`))

	err := ProcessVideoHandler(context.Background(), tk, svc)
	if err == nil {
		t.Fatal("expected error for invalid UUID")
	}
	if !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("expected SkipRetry for an unparseable ID, got %v", err)
	}
	if svc.ProcessCalled {
		t.Error("service should not be called on invalid id")
	}
}

func TestProcessVideoHandler_ServiceError(t *testing.T) {
	id := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	svcErr := errors.New("svc fail")
	svc := &mock.Processor{ProcessErr: svcErr}

	in := port.ProcessVideoInput{VideoID: id, OwnerID: db.NewUUID(), SourceURL: "http://minio.local:9000/uploads/raw.mov"}
	err := ProcessVideoHandler(context.Background(), newProcessTask(t, in), svc)
	if !errors.Is(err, svcErr) {
		t.Fatalf("got error %v; want %v", err, svcErr)
	}
	// a transient failure must stay retryable
	if errors.Is(err, asynq.SkipRetry) {
		t.Error("transient error should not carry SkipRetry")
	}
	if !svc.ProcessCalled {
		t.Error("service not called")
	}
	if svc.ProcessedIn.VideoID != id {
		t.Errorf("service got id %s; want %s", svc.ProcessedIn.VideoID, id)
	}
}

func TestProcessVideoHandler_UnreadableSource(t *testing.T) {
	id := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	svc := &mock.Processor{ProcessErr: fmt.Errorf("probing metadata: %w", media.ErrUnreadableSource)}

	in := port.ProcessVideoInput{VideoID: id, OwnerID: db.NewUUID()}
	err := ProcessVideoHandler(context.Background(), newProcessTask(t, in), svc)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("expected SkipRetry for an unreadable source, got %v", err)
	}
}

func TestProcessVideoHandler_Success(t *testing.T) {
	id := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	svc := &mock.Processor{ResultOut: &port.ProcessingResult{VideoID: id, Status: "completed"}}

	in := port.ProcessVideoInput{
		VideoID:          id,
		SourceURL:        "http://minio.local:9000/uploads/aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee/raw.mov",
		OwnerID:          db.NewUUID(),
		OriginalFilename: "raw.mov",
	}
	err := ProcessVideoHandler(context.Background(), newProcessTask(t, in), svc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.ProcessCalled {
		t.Error("service not called")
	}
	if svc.ProcessedIn != in {
		t.Errorf("service got input %+v; want %+v", svc.ProcessedIn, in)
	}
}
