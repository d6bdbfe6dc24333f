package api

import (
	"log"
	"net/http"

	"github.com/talenthub/videorank-ms-go/internal/api_context"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

// GetVideoHandler returns one video record. Owners see their own videos in
// any state; everyone else only sees them once processed.
func GetVideoHandler(svc port.VideoGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.VideoIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		video, err := svc.GetVideo(r.Context(), id)
		if err != nil {
			writeDomainError(w, err, "Could not get video details")
			return
		}

		requesterID, authed := api_context.AuthUserIDFromContext(r.Context())
		isOwner := authed && requesterID == video.OwnerID
		if !isOwner && !api_context.IsAdmin(r.Context()) && !video.Votable() {
			WriteError(w, http.StatusNotFound, "Video not found", nil)
			return
		}

		RespondJSON(w, http.StatusOK, video)
		log.Printf("✅  Successfully returned details for video #%s", id)
	}
}
