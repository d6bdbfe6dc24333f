package api

import (
	"log"
	"net/http"

	"github.com/talenthub/videorank-ms-go/internal/api_context"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

type SubmitUploadResponse struct {
	JobID string `json:"job_id"`
}

// SubmitUploadHandler confirms that the raw file landed in staging and starts
// the processing lifecycle. Only the owner or an admin may submit; calling it
// twice for the same video is rejected with a conflict.
func SubmitUploadHandler(svc port.JobSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videoID, ok := api_context.VideoIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}
		requesterID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "authentication required", nil)
			return
		}

		jobID, err := svc.Submit(r.Context(), videoID, requesterID, api_context.IsAdmin(r.Context()))
		if err != nil {
			writeDomainError(w, err, "Could not start processing")
			return
		}

		RespondJSON(w, http.StatusAccepted, SubmitUploadResponse{JobID: jobID.String()})
		log.Printf("✅  Successfully queued processing job #%s for video #%s", jobID, videoID)
	}
}
