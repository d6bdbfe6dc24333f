package api

import (
	"log"
	"net/http"

	"github.com/talenthub/videorank-ms-go/internal/port"
)

// RankingsHandler returns the current standings, optionally filtered by city,
// served through the view cache with an ETag.
func RankingsHandler(renderer port.HTTPRenderer, svc port.RankingComputer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Query().Get("city")

		raw, etag, err := renderer.RenderRanking(r.Context(), svc, city)
		if err != nil {
			writeDomainError(w, err, "Could not compute rankings")
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=60")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			log.Printf("✅  Returning cached rankings (city=%q)", city)
			return
		}

		RespondRawJSON(w, http.StatusOK, raw)
		log.Printf("✅  Successfully returned rankings (city=%q)", city)
	}
}
