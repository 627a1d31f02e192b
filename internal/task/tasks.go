package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/streamhive/videos-ms-go/internal/port"
)

const TypeProcessVideo = "video:process"

// QueueVideos is the asynq queue all processing jobs go through.
const QueueVideos = "videos"

type ProcessVideoPayload struct {
	VideoID          string `json:"video_id"`
	SourceURL        string `json:"source_url"`
	OwnerID          string `json:"owner_id"`
	OriginalFilename string `json:"original_filename"`
}

// NewProcessVideoTask creates an Asynq task for processing one uploaded video.
func NewProcessVideoTask(in port.ProcessVideoInput) (*asynq.Task, error) {
	p := ProcessVideoPayload{
		VideoID:          in.VideoID.String(),
		SourceURL:        in.SourceURL,
		OwnerID:          in.OwnerID.String(),
		OriginalFilename: in.OriginalFilename,
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal process-video payload: %w", err)
	}
	return asynq.NewTask(TypeProcessVideo, data), nil
}

// ParseProcessVideoPayload parses the task payload to ProcessVideoPayload.
func ParseProcessVideoPayload(t *asynq.Task) (ProcessVideoPayload, error) {
	var p ProcessVideoPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return ProcessVideoPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
