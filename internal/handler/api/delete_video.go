package api

import (
	"log"
	"net/http"

	"github.com/talenthub/videorank-ms-go/internal/api_context"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

// DeleteVideoHandler deletes a video by ID. Only the owner or an admin may
// delete; the cascade drops its votes and fails any live job.
func DeleteVideoHandler(svc port.VideoDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.VideoIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}
		requesterID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "authentication required", nil)
			return
		}

		if err := svc.DeleteVideo(r.Context(), id, requesterID, api_context.IsAdmin(r.Context())); err != nil {
			writeDomainError(w, err, "Failed to delete video")
			return
		}

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅  Successfully deleted video #%s", id)
	}
}
