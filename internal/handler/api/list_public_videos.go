package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/talenthub/videorank-ms-go/internal/port"
	"github.com/talenthub/videorank-ms-go/internal/usecase/video"
)

// ListPublicVideosHandler returns one page of the public gallery, served
// through the view cache with an ETag.
func ListPublicVideosHandler(renderer port.HTTPRenderer, svc port.PublicVideoLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := parsePagination(r)

		raw, etag, err := renderer.RenderPublicVideos(r.Context(), svc, limit, offset)
		if err != nil {
			writeDomainError(w, err, "Could not list videos")
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=60")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			log.Printf("✅  Returning cached public listing (limit=%d offset=%d)", limit, offset)
			return
		}

		RespondRawJSON(w, http.StatusOK, raw)
		log.Printf("✅  Successfully returned public listing (limit=%d offset=%d)", limit, offset)
	}
}

// parsePagination reads limit/offset query params; the use case clamps them.
func parsePagination(r *http.Request) (limit, offset int) {
	limit = video.DefaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			offset = n
		}
	}
	return limit, offset
}
