package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/talenthub/videorank-ms-go/internal/api_context"
	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/domain"
	"github.com/talenthub/videorank-ms-go/internal/mock"
	"github.com/talenthub/videorank-ms-go/internal/model"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

func TestDeleteVideoHandler(t *testing.T) {
	ownerID := testUUID(t, "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
	videoID := testUUID(t, "11111111-2222-3333-4444-555555555555")

	deleteRequest := func(requester db.UUID, roles ...string) *http.Request {
		req := httptest.NewRequest(http.MethodDelete, "/videos/"+videoID.String(), nil)
		ctx := authedContext(req.Context(), requester, "Ana", "Bogota", roles...)
		ctx = context.WithValue(ctx, api_context.VideoIDKey, videoID)
		return req.WithContext(ctx)
	}

	t.Run("success", func(t *testing.T) {
		svc := &mock.VideoDeleter{}
		rec := httptest.NewRecorder()

		DeleteVideoHandler(svc).ServeHTTP(rec, deleteRequest(ownerID))

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusNoContent)
		}
		if !svc.Called || svc.ID != videoID {
			t.Error("expected the deleter to run against the routed video")
		}
		if svc.AsAdmin {
			t.Error("a plain user must not be flagged admin")
		}
	})

	t.Run("admin flag forwarded", func(t *testing.T) {
		svc := &mock.VideoDeleter{}
		rec := httptest.NewRecorder()

		DeleteVideoHandler(svc).ServeHTTP(rec, deleteRequest(ownerID, "admin"))

		if !svc.AsAdmin {
			t.Error("expected the admin role to be forwarded")
		}
	})

	t.Run("forbidden", func(t *testing.T) {
		svc := &mock.VideoDeleter{Err: domain.ErrForbidden}
		rec := httptest.NewRecorder()

		DeleteVideoHandler(svc).ServeHTTP(rec, deleteRequest(testUUID(t, "99999999-9999-9999-9999-999999999999")))

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mock.VideoDeleter{Err: domain.ErrVideoNotFound}
		rec := httptest.NewRecorder()

		DeleteVideoHandler(svc).ServeHTTP(rec, deleteRequest(ownerID))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestGetVideoHandler(t *testing.T) {
	ownerID := testUUID(t, "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
	videoID := testUUID(t, "11111111-2222-3333-4444-555555555555")

	getRequest := func(requester *db.UUID, roles ...string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/videos/"+videoID.String(), nil)
		ctx := req.Context()
		if requester != nil {
			ctx = authedContext(ctx, *requester, "Ana", "Bogota", roles...)
		}
		ctx = context.WithValue(ctx, api_context.VideoIDKey, videoID)
		return req.WithContext(ctx)
	}

	t.Run("owner sees unprocessed video", func(t *testing.T) {
		svc := &mock.VideoGetter{Out: &port.GetVideoOutput{Video: model.Video{ID: videoID, OwnerID: ownerID, Status: model.VideoStatusProcessing}}}
		rec := httptest.NewRecorder()

		GetVideoHandler(svc).ServeHTTP(rec, getRequest(&ownerID))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("stranger cannot see unprocessed video", func(t *testing.T) {
		stranger := testUUID(t, "99999999-9999-9999-9999-999999999999")
		svc := &mock.VideoGetter{Out: &port.GetVideoOutput{Video: model.Video{ID: videoID, OwnerID: ownerID, Status: model.VideoStatusProcessing}}}
		rec := httptest.NewRecorder()

		GetVideoHandler(svc).ServeHTTP(rec, getRequest(&stranger))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mock.VideoGetter{Err: domain.ErrVideoNotFound}
		rec := httptest.NewRecorder()

		GetVideoHandler(svc).ServeHTTP(rec, getRequest(&ownerID))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusNotFound)
		}
	})
}
