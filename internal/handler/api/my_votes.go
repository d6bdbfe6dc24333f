package api

import (
	"log"
	"net/http"

	"github.com/talenthub/videorank-ms-go/internal/api_context"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

// MyVotesHandler returns the authenticated user's active votes and remaining
// budget. Always served fresh so a voter sees their own writes.
func MyVotesHandler(svc port.VoteLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		voterID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "authentication required", nil)
			return
		}

		out, err := svc.MyVotes(r.Context(), voterID)
		if err != nil {
			writeDomainError(w, err, "Could not list votes")
			return
		}

		w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
		RespondJSON(w, http.StatusOK, out)
		log.Printf("✅  Successfully returned votes for user #%s", voterID)
	}
}
