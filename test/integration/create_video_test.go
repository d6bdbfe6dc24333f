package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/talenthub/videorank-ms-go/internal/api_context"
	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/handler/api"
	"github.com/talenthub/videorank-ms-go/internal/migration"
	"github.com/talenthub/videorank-ms-go/internal/model"
	"github.com/talenthub/videorank-ms-go/internal/port"
	"github.com/talenthub/videorank-ms-go/internal/repository/mariadb"
	videoSvc "github.com/talenthub/videorank-ms-go/internal/usecase/video"
	"github.com/talenthub/videorank-ms-go/test/testutil"
)

func TestCreateVideoIntegration_Success(t *testing.T) {
	testDB, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	defer testDB.Cleanup()
	database := testDB.DB
	if err := migration.MigrateUp(database); err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}

	buckets, err := testutil.SetupTestBuckets(GlobalStrg, GlobalMinio)
	if err != nil {
		t.Fatalf("setup buckets: %v", err)
	}
	defer buckets.Cleanup()

	videoRepo := mariadb.NewVideoRepository(database)
	svc := videoSvc.NewVideoCreator(videoRepo, buckets.Staging, db.NewUUID, 120, time.Minute)

	ownerID := db.NewUUID()
	in := port.CreateVideoInput{
		OwnerID:   ownerID,
		OwnerName: "Nadia",
		City:      "Lyon",
		Title:     "My audition clip",
		SourceRef: "audition.mp4",
	}

	out, err := svc.CreateVideo(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateVideo returned error: %v", err)
	}

	if out.Video.ID == (db.UUID(uuid.Nil)) {
		t.Fatal("expected non-empty ID")
	}
	if out.UploadURL == "" {
		t.Fatal("expected non-empty presigned URL")
	}
	u, err := url.Parse(out.UploadURL)
	if err != nil {
		t.Fatalf("invalid URL %q: %v", out.UploadURL, err)
	}
	wantPath := "/" + testutil.UploadsBucket + "/" + model.StagingObjectKey(out.Video.ID, "audition.mp4")
	if u.Path != wantPath {
		t.Errorf("expected URL path %q, got %q", wantPath, u.Path)
	}

	var (
		id        db.UUID
		status    string
		sourceRef string
		city      string
		voteCount int
	)
	row := database.QueryRowContext(context.Background(),
		"SELECT id, status, source_ref, city, vote_count FROM videos WHERE id = ?", out.Video.ID)
	if err := row.Scan(&id, &status, &sourceRef, &city, &voteCount); err != nil {
		t.Fatalf("failed to scan video record: %v", err)
	}

	if id != out.Video.ID {
		t.Errorf("expected ID %q, got %q", out.Video.ID, id)
	}
	if status != model.VideoStatusUploaded {
		t.Errorf("expected status %q, got %q", model.VideoStatusUploaded, status)
	}
	if sourceRef != out.Video.SourceRef {
		t.Errorf("expected source_ref %q, got %q", out.Video.SourceRef, sourceRef)
	}
	if city != "Lyon" {
		t.Errorf("expected city %q, got %q", "Lyon", city)
	}
	if voteCount != 0 {
		t.Errorf("expected vote_count 0, got %d", voteCount)
	}
}

func TestCreateVideoIntegration_ErrorValidation(t *testing.T) {
	ownerID := db.NewUUID()

	r := chi.NewRouter()
	r.Use(fakeAuth(ownerID, "Nadia", "Lyon"))
	r.Post("/videos", api.CreateVideoHandler(nil))

	// Missing `filename` entirely
	req := httptest.NewRequest(http.MethodPost, "/videos", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d; want %d", res.StatusCode, http.StatusBadRequest)
	}

	var errMap1 map[string]string
	if err := json.NewDecoder(res.Body).Decode(&errMap1); err != nil {
		t.Fatalf("decoding validation JSON: %v", err)
	}
	msgs1, ok := errMap1["filename"]
	if !ok {
		t.Fatalf("expected a \"filename\" key in error map, got %v", errMap1)
	}
	if !strings.Contains(msgs1, "required") {
		t.Errorf("Filename error = %q; want to mention \"required\"", msgs1)
	}

	// Too-long title (>120 chars)
	longTitle := strings.Repeat("x", 121)
	body := `{"filename":"clip.mp4","title":` + strconv.Quote(longTitle) + `}`
	req2 := httptest.NewRequest(http.MethodPost, "/videos", strings.NewReader(body))
	req2.Header.Set("Content-Type", "application/json")
	rec2 := httptest.NewRecorder()
	r.ServeHTTP(rec2, req2)

	res2 := rec2.Result()
	defer res2.Body.Close()

	if res2.StatusCode != http.StatusBadRequest {
		t.Fatalf("status (long title) = %d; want %d", res2.StatusCode, http.StatusBadRequest)
	}

	var errMap2 map[string]string
	if err := json.NewDecoder(res2.Body).Decode(&errMap2); err != nil {
		t.Fatalf("decoding validation JSON (long title): %v", err)
	}
	msgs2, ok := errMap2["title"]
	if !ok {
		t.Fatalf("expected a \"title\" key in error map for long title, got %v", errMap2)
	}
	if !strings.Contains(msgs2, "max") {
		t.Errorf("Title error (long) = %q; want to mention max length", msgs2)
	}
}

// fakeAuth injects a verified identity the way the JWT middleware would.
func fakeAuth(userID db.UUID, name, city string, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), api_context.AuthUserIDKey, userID)
			ctx = context.WithValue(ctx, api_context.AuthNameKey, name)
			ctx = context.WithValue(ctx, api_context.AuthCityKey, city)
			ctx = context.WithValue(ctx, api_context.AuthRolesKey, roles)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
