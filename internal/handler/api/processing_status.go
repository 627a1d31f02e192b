package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/streamhive/videos-ms-go/internal/api_context"
	"github.com/streamhive/videos-ms-go/internal/port"
)

type ProcessingStatusResponse struct {
	Status      string          `json:"status"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"max_attempts,omitempty"`
	LastError   string          `json:"last_error,omitempty"`
	Stage       string          `json:"stage,omitempty"`
	Percent     *float64        `json:"percent,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
	NextRetryAt *time.Time      `json:"next_retry_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// ProcessingStatusHandler reports where a processing job stands: the queue
// registry's view (attempts, last error, result) plus the last known encode
// progress for jobs still running.
func ProcessingStatusHandler(inspector port.JobInspector, prog port.ProgressStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		status, err := inspector.JobStatus(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not query job status", err)
			return
		}

		if status.State == port.JobStateNotFound {
			RespondJSON(w, http.StatusNotFound, ProcessingStatusResponse{Status: string(port.JobStateNotFound)})
			return
		}

		resp := ProcessingStatusResponse{
			Status:      string(status.State),
			Attempts:    status.Attempts,
			MaxAttempts: status.MaxAttempts,
			LastError:   status.LastError,
			Result:      status.Result,
		}
		if !status.NextRetryAt.IsZero() {
			t := status.NextRetryAt
			resp.NextRetryAt = &t
		}
		if !status.CompletedAt.IsZero() {
			t := status.CompletedAt
			resp.CompletedAt = &t
		}

		// for in-flight jobs, enrich with the last known pipeline progress
		if status.State == port.JobStateActive || status.State == port.JobStateWaiting {
			if p, err := prog.Get(r.Context(), id); err == nil && p != nil {
				resp.Stage = p.Stage
				resp.Percent = &p.Percent
			}
		}

		RespondJSON(w, http.StatusOK, resp)
		log.Printf("✅  Successfully returned processing status for video #%s", id)
	}
}
