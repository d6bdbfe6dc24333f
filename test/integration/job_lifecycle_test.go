package integration

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/domain"
	"github.com/talenthub/videorank-ms-go/internal/migration"
	"github.com/talenthub/videorank-ms-go/internal/model"
	"github.com/talenthub/videorank-ms-go/internal/repository/mariadb"
	"github.com/talenthub/videorank-ms-go/test/testutil"
)

func setupJobDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	testDB, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	if err := migration.MigrateUp(testDB.DB); err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}
	return testDB.DB, func() { _ = testDB.Cleanup() }
}

func insertUploadedVideo(t *testing.T, database *sql.DB) db.UUID {
	t.Helper()

	repo := mariadb.NewVideoRepository(database)
	id := db.NewUUID()
	v := model.Video{
		ID:        id,
		OwnerID:   db.NewUUID(),
		OwnerName: "Sam",
		Title:     "fresh upload",
		Status:    model.VideoStatusUploaded,
		SourceRef: "fresh.mp4",
	}
	if err := repo.Create(context.Background(), &v); err != nil {
		t.Fatalf("insert video: %v", err)
	}
	return id
}

func TestJobLifecycleIntegration_HappyPath(t *testing.T) {
	database, cleanup := setupJobDB(t)
	defer cleanup()

	ctx := context.Background()
	videoRepo := mariadb.NewVideoRepository(database)
	jobRepo := mariadb.NewJobRepository(database)
	videoID := insertUploadedVideo(t, database)

	job := &model.ProcessingJob{ID: db.NewUUID(), VideoID: videoID, State: model.JobStateQueued}
	if err := jobRepo.CreateForUpload(ctx, job); err != nil {
		t.Fatalf("CreateForUpload: %v", err)
	}

	// the video flips to processing in the same transaction
	v, err := videoRepo.GetByID(ctx, videoID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if v.Status != model.VideoStatusProcessing {
		t.Errorf("expected video status %q, got %q", model.VideoStatusProcessing, v.Status)
	}

	// a second job for the same video is rejected
	dup := &model.ProcessingJob{ID: db.NewUUID(), VideoID: videoID, State: model.JobStateQueued}
	if err := jobRepo.CreateForUpload(ctx, dup); !errors.Is(err, domain.ErrInvalidState) && !errors.Is(err, domain.ErrDuplicateJob) {
		t.Errorf("expected a duplicate-job rejection, got %v", err)
	}

	if err := jobRepo.MarkRunning(ctx, job.ID); err != nil {
		t.Fatalf("MarkRunning: %v", err)
	}
	// MarkRunning only transitions queued jobs
	if err := jobRepo.MarkRunning(ctx, job.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState on a second MarkRunning, got %v", err)
	}

	resultKey := model.ProcessedObjectKey(videoID)
	if err := jobRepo.MarkSucceeded(ctx, job.ID, resultKey); err != nil {
		t.Fatalf("MarkSucceeded: %v", err)
	}
	got, err := jobRepo.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID job: %v", err)
	}
	if got.State != model.JobStateSucceeded {
		t.Errorf("expected state %q, got %q", model.JobStateSucceeded, got.State)
	}
	if got.ResultKey == nil || *got.ResultKey != resultKey {
		t.Errorf("unexpected result key %v", got.ResultKey)
	}

	// settling an already-settled job is rejected at the repository level
	if err := jobRepo.MarkFailed(ctx, job.ID, "too late"); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState when failing a succeeded job, got %v", err)
	}
}

func TestJobLifecycleIntegration_CreateForMissingOrBusyVideo(t *testing.T) {
	database, cleanup := setupJobDB(t)
	defer cleanup()

	ctx := context.Background()
	jobRepo := mariadb.NewJobRepository(database)

	job := &model.ProcessingJob{ID: db.NewUUID(), VideoID: db.NewUUID(), State: model.JobStateQueued}
	if err := jobRepo.CreateForUpload(ctx, job); !errors.Is(err, domain.ErrVideoNotFound) {
		t.Errorf("expected ErrVideoNotFound, got %v", err)
	}

	videoID := insertUploadedVideo(t, database)
	first := &model.ProcessingJob{ID: db.NewUUID(), VideoID: videoID, State: model.JobStateQueued}
	if err := jobRepo.CreateForUpload(ctx, first); err != nil {
		t.Fatalf("CreateForUpload: %v", err)
	}
	second := &model.ProcessingJob{ID: db.NewUUID(), VideoID: videoID, State: model.JobStateQueued}
	if err := jobRepo.CreateForUpload(ctx, second); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState once the video left uploaded, got %v", err)
	}
}

func TestJobLifecycleIntegration_PruneTerminalJobs(t *testing.T) {
	database, cleanup := setupJobDB(t)
	defer cleanup()

	ctx := context.Background()
	jobRepo := mariadb.NewJobRepository(database)

	oldVideo := insertUploadedVideo(t, database)
	oldJob := &model.ProcessingJob{ID: db.NewUUID(), VideoID: oldVideo, State: model.JobStateQueued}
	if err := jobRepo.CreateForUpload(ctx, oldJob); err != nil {
		t.Fatalf("CreateForUpload: %v", err)
	}
	if err := jobRepo.MarkRunning(ctx, oldJob.ID); err != nil {
		t.Fatalf("MarkRunning: %v", err)
	}
	if err := jobRepo.MarkFailed(ctx, oldJob.ID, "encoder crashed"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	// age the settled job past the cutoff
	if _, err := database.Exec(
		"UPDATE processing_jobs SET updated_at = ? WHERE id = ?",
		time.Now().Add(-48*time.Hour), oldJob.ID,
	); err != nil {
		t.Fatalf("age job: %v", err)
	}

	liveVideo := insertUploadedVideo(t, database)
	liveJob := &model.ProcessingJob{ID: db.NewUUID(), VideoID: liveVideo, State: model.JobStateQueued}
	if err := jobRepo.CreateForUpload(ctx, liveJob); err != nil {
		t.Fatalf("CreateForUpload live: %v", err)
	}

	deleted, err := jobRepo.DeleteTerminalBefore(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteTerminalBefore: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 pruned job, got %d", deleted)
	}

	if _, err := jobRepo.GetByID(ctx, oldJob.ID); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("expected the settled job to be gone, got %v", err)
	}
	if _, err := jobRepo.GetByID(ctx, liveJob.ID); err != nil {
		t.Errorf("expected the queued job to survive, got %v", err)
	}
}
