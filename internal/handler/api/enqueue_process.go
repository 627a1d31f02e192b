package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/streamhive/videos-ms-go/internal/api_context"
	"github.com/streamhive/videos-ms-go/internal/db"
	"github.com/streamhive/videos-ms-go/internal/model"
	"github.com/streamhive/videos-ms-go/internal/port"
	"github.com/streamhive/videos-ms-go/internal/task"
	"github.com/streamhive/videos-ms-go/internal/validation"
)

type EnqueueProcessRequest struct {
	SourceURL        string `json:"source_url" validate:"required,url"`
	OwnerID          string `json:"owner_id" validate:"required,uuid"`
	OriginalFilename string `json:"original_filename" validate:"required"`
}

type EnqueueProcessResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// EnqueueProcessHandler queues the processing pipeline for one uploaded
// video. The record must exist and be pending or failed; a job already in
// the registry for the same video surfaces as a conflict.
func EnqueueProcessHandler(repo port.VideoRepository, dispatcher port.TaskDispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		var req EnqueueProcessRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "failed to encode validation errors", err)
				return
			}
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			log.Printf("❌  Validation failed: %s", errsJSON)
			return
		}

		video, err := repo.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				WriteError(w, http.StatusNotFound, "Video not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not fetch video details", err)
			return
		}
		if video.Status != model.VideoStatusPending && video.Status != model.VideoStatusFailed {
			WriteError(w, http.StatusConflict, fmt.Sprintf("video #%s is already %s", id, video.Status), nil)
			return
		}

		ownerID, err := uuid.Parse(req.OwnerID)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request", fmt.Errorf("invalid UUID: %w", err))
			return
		}

		in := port.ProcessVideoInput{
			VideoID:          id,
			SourceURL:        req.SourceURL,
			OwnerID:          db.UUID(ownerID),
			OriginalFilename: req.OriginalFilename,
		}
		jobID, err := dispatcher.EnqueueProcessVideo(r.Context(), in)
		if err != nil {
			if errors.Is(err, task.ErrDuplicateJob) {
				WriteError(w, http.StatusConflict, fmt.Sprintf("a processing job already exists for video #%s", id), nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, fmt.Sprintf("could not enqueue processing of video #%s", id), err)
			return
		}

		RespondJSON(w, http.StatusAccepted, EnqueueProcessResponse{JobID: jobID, Status: "queued"})
		log.Printf("✅  Successfully queued processing of video #%s", id)
	}
}
