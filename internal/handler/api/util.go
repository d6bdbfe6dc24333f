package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/talenthub/videorank-ms-go/internal/domain"
	"github.com/talenthub/videorank-ms-go/internal/logger"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, status int, msg string, err error) {
	ctx := context.Background()
	if err != nil {
		logger.Errorf(ctx, "❌  %s: %v", msg, err)
	} else {
		logger.Error(ctx, "❌  "+msg)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, status, ErrorResponse{Error: msg})
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to encode JSON response: %v", err)
	}
}

func RespondRawJSON(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to write JSON payload: %v", err)
	}
}

// writeDomainError maps a failed use case to its HTTP status. fallback is the
// message used when the error is not one of the domain sentinels.
func writeDomainError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		WriteError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, domain.ErrForbidden):
		WriteError(w, http.StatusForbidden, "you do not own this resource", nil)
	case errors.Is(err, domain.ErrVideoNotFound):
		WriteError(w, http.StatusNotFound, "Video not found", nil)
	case errors.Is(err, domain.ErrJobNotFound):
		WriteError(w, http.StatusNotFound, "Processing job not found", nil)
	case errors.Is(err, domain.ErrVoteNotFound):
		WriteError(w, http.StatusNotFound, "Vote not found", nil)
	case errors.Is(err, domain.ErrDuplicateVote):
		WriteError(w, http.StatusConflict, "you already voted for this video", nil)
	case errors.Is(err, domain.ErrVoteCapExceeded):
		WriteError(w, http.StatusConflict, "vote cap reached", nil)
	case errors.Is(err, domain.ErrDuplicateJob):
		WriteError(w, http.StatusConflict, "a processing job already exists for this video", nil)
	case errors.Is(err, domain.ErrInvalidState):
		WriteError(w, http.StatusConflict, "operation not allowed in the video's current state", nil)
	default:
		WriteError(w, http.StatusInternalServerError, fallback, err)
	}
}
