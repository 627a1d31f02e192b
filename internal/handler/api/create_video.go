package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/streamhive/videos-ms-go/internal/db"
	"github.com/streamhive/videos-ms-go/internal/model"
	"github.com/streamhive/videos-ms-go/internal/port"
	"github.com/streamhive/videos-ms-go/internal/validation"
)

type CreateVideoRequest struct {
	OwnerID          string `json:"owner_id" validate:"required,uuid"`
	Title            string `json:"title" validate:"required"`
	OriginalFilename string `json:"original_filename" validate:"required"`
	SourceURL        string `json:"source_url" validate:"required,url"`
}

// CreateVideoHandler registers an uploaded video as a pending record. The
// record stays pending until its processing job is queued and picked up.
func CreateVideoHandler(repo port.VideoRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateVideoRequest
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

		ownerID, err := uuid.Parse(req.OwnerID)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request", fmt.Errorf("invalid UUID: %w", err))
			return
		}

		video := &model.Video{
			ID:               db.NewUUID(),
			OwnerID:          db.UUID(ownerID),
			Title:            req.Title,
			OriginalFilename: req.OriginalFilename,
			SourceURL:        req.SourceURL,
			Status:           model.VideoStatusPending,
		}
		if err := repo.Create(r.Context(), video); err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not create video record", err)
			return
		}

		RespondJSON(w, http.StatusCreated, video)
		log.Printf("✅  Successfully created video #%s", video.ID)
	}
}
