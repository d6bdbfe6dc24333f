package api

import (
	"net/http"

	"github.com/talenthub/videorank-ms-go/internal/api_context"
	"github.com/talenthub/videorank-ms-go/internal/logger"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

type VoteResponse struct {
	VideoID   string `json:"video_id"`
	VoteCount int    `json:"vote_count"`
}

// VoteHandler casts the authenticated user's vote for a video.
func VoteHandler(svc port.Voter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videoID, ok := api_context.VideoIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}
		voterID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "authentication required", nil)
			return
		}

		count, err := svc.Vote(r.Context(), voterID, videoID)
		if err != nil {
			writeDomainError(w, err, "Could not record vote")
			return
		}

		RespondJSON(w, http.StatusCreated, VoteResponse{VideoID: videoID.String(), VoteCount: count})
		logger.Infof(r.Context(), "✅  Successfully recorded vote for video #%s", videoID)
	}
}

// UnvoteHandler removes the authenticated user's vote from a video, freeing
// one slot of their budget.
func UnvoteHandler(svc port.Voter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videoID, ok := api_context.VideoIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}
		voterID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "authentication required", nil)
			return
		}

		count, err := svc.Unvote(r.Context(), voterID, videoID)
		if err != nil {
			writeDomainError(w, err, "Could not remove vote")
			return
		}

		RespondJSON(w, http.StatusOK, VoteResponse{VideoID: videoID.String(), VoteCount: count})
		logger.Infof(r.Context(), "✅  Successfully removed vote from video #%s", videoID)
	}
}
