package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/talenthub/videorank-ms-go/internal/api_context"
	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/domain"
	"github.com/talenthub/videorank-ms-go/internal/mock"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

func voteRequest(t *testing.T, method string, voterID, videoID db.UUID) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, "/public/videos/"+videoID.String()+"/vote", nil)
	ctx := authedContext(req.Context(), voterID, "Ana", "Bogota")
	ctx = context.WithValue(ctx, api_context.VideoIDKey, videoID)
	return req.WithContext(ctx)
}

func TestVoteHandler(t *testing.T) {
	voterID := testUUID(t, "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
	videoID := testUUID(t, "11111111-2222-3333-4444-555555555555")

	t.Run("success", func(t *testing.T) {
		svc := &mock.Voter{VoteCount: 7}
		rec := httptest.NewRecorder()

		VoteHandler(svc).ServeHTTP(rec, voteRequest(t, http.MethodPost, voterID, videoID))

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusCreated)
		}
		var out VoteResponse
		if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if out.VoteCount != 7 {
			t.Errorf("vote count = %d; want 7", out.VoteCount)
		}
		if svc.VotedVideo != videoID {
			t.Error("expected the vote to target the routed video")
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/public/videos/x/vote", nil)
		req = req.WithContext(context.WithValue(req.Context(), api_context.VideoIDKey, videoID))
		rec := httptest.NewRecorder()

		VoteHandler(&mock.Voter{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	errCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"video not found", domain.ErrVideoNotFound, http.StatusNotFound},
		{"not votable yet", domain.ErrInvalidState, http.StatusConflict},
		{"duplicate vote", domain.ErrDuplicateVote, http.StatusConflict},
		{"cap exceeded", domain.ErrVoteCapExceeded, http.StatusConflict},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mock.Voter{VoteErr: tc.err}
			rec := httptest.NewRecorder()

			VoteHandler(svc).ServeHTTP(rec, voteRequest(t, http.MethodPost, voterID, videoID))

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestUnvoteHandler(t *testing.T) {
	voterID := testUUID(t, "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
	videoID := testUUID(t, "11111111-2222-3333-4444-555555555555")

	t.Run("success", func(t *testing.T) {
		svc := &mock.Voter{UnvoteCount: 0}
		rec := httptest.NewRecorder()

		UnvoteHandler(svc).ServeHTTP(rec, voteRequest(t, http.MethodDelete, voterID, videoID))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
		}
		if svc.UnvotedVideo != videoID {
			t.Error("expected the unvote to target the routed video")
		}
	})

	t.Run("no active vote", func(t *testing.T) {
		svc := &mock.Voter{UnvoteErr: domain.ErrVoteNotFound}
		rec := httptest.NewRecorder()

		UnvoteHandler(svc).ServeHTTP(rec, voteRequest(t, http.MethodDelete, voterID, videoID))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestMyVotesHandler(t *testing.T) {
	voterID := testUUID(t, "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

	t.Run("success", func(t *testing.T) {
		svc := &mock.VoteLister{Out: &port.MyVotesOutput{
			VideoIDs:  []db.UUID{testUUID(t, "11111111-2222-3333-4444-555555555555")},
			Used:      1,
			Remaining: 1,
		}}
		req := httptest.NewRequest(http.MethodGet, "/public/my-votes", nil)
		req = req.WithContext(authedContext(req.Context(), voterID, "Ana", "Bogota"))
		rec := httptest.NewRecorder()

		MyVotesHandler(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
		}
		if svc.VoterID != voterID {
			t.Error("expected the lister to receive the authenticated voter")
		}
		if cc := rec.Header().Get("Cache-Control"); cc != "no-store, max-age=0, must-revalidate" {
			t.Errorf("Cache-Control = %q; my-votes must never be cached", cc)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/public/my-votes", nil)
		rec := httptest.NewRecorder()

		MyVotesHandler(&mock.VoteLister{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}
