package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/talenthub/videorank-ms-go/internal/api_context"
	"github.com/talenthub/videorank-ms-go/internal/logger"
	"github.com/talenthub/videorank-ms-go/internal/port"
	"github.com/talenthub/videorank-ms-go/internal/validation"
)

type CreateVideoRequest struct {
	// the title length limit is configurable, so it is enforced by the use case
	Title    string `json:"title"`
	Filename string `json:"filename" validate:"required,max=255,videofile"`
}

// CreateVideoHandler registers an upload and hands back a presigned URL for
// the raw file. The job is only created once the client confirms the upload.
func CreateVideoHandler(svc port.VideoCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		ownerName, _ := api_context.AuthNameFromContext(r.Context())
		city, _ := api_context.AuthCityFromContext(r.Context())

		var req CreateVideoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request", fmt.Errorf("invalid JSON: %w", err))
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "Validation error (could not encode details)", fmt.Errorf("encoding validation errors: %w", err))
				return
			}

			// return the validation errors payload directly
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		in := port.CreateVideoInput{
			OwnerID:   ownerID,
			OwnerName: ownerName,
			City:      city,
			Title:     req.Title,
			SourceRef: req.Filename,
		}
		out, err := svc.CreateVideo(r.Context(), in)
		if err != nil {
			writeDomainError(w, err, "Could not register video upload")
			return
		}

		RespondJSON(w, http.StatusCreated, out)
		logger.Infof(r.Context(), "✅  Successfully registered upload for video #%s", out.Video.ID)
	}
}
