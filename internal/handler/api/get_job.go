package api

import (
	"log"
	"net/http"

	"github.com/talenthub/videorank-ms-go/internal/api_context"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

// GetJobHandler is the pollable job-status read.
func GetJobHandler(svc port.JobPoller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID, ok := api_context.JobIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		out, err := svc.Poll(r.Context(), jobID)
		if err != nil {
			writeDomainError(w, err, "Could not get job status")
			return
		}

		w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
		RespondJSON(w, http.StatusOK, out)
		log.Printf("✅  Successfully returned status for job #%s", jobID)
	}
}
