package integration

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/migration"
	"github.com/talenthub/videorank-ms-go/internal/model"
	"github.com/talenthub/videorank-ms-go/internal/repository/mariadb"
	"github.com/talenthub/videorank-ms-go/internal/task"
	processingSvc "github.com/talenthub/videorank-ms-go/internal/usecase/processing"
	"github.com/talenthub/videorank-ms-go/test/testutil"
)

type processHarness struct {
	db        *sql.DB
	buckets   *testutil.TestBuckets
	videoRepo *mariadb.VideoRepository
	jobRepo   *mariadb.JobRepository
	cleanup   func()
}

func setupProcessing(t *testing.T) *processHarness {
	t.Helper()

	testDB, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	dbConn := testDB.DB
	if err := migration.MigrateUp(dbConn); err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}

	buckets, err := testutil.SetupTestBuckets(GlobalStrg, GlobalMinio)
	if err != nil {
		t.Fatalf("setup buckets: %v", err)
	}

	workerStop := testutil.StartWorker(&db.Database{DB: dbConn}, buckets.Staging, buckets.Processed, RedisAddr)

	h := &processHarness{
		db:        dbConn,
		buckets:   buckets,
		videoRepo: mariadb.NewVideoRepository(dbConn),
		jobRepo:   mariadb.NewJobRepository(dbConn),
		cleanup: func() {
			workerStop()
			_ = buckets.Cleanup()
			_ = testDB.Cleanup()
		},
	}
	return h
}

func (h *processHarness) insertUploaded(t *testing.T, withObject bool) (db.UUID, db.UUID) {
	t.Helper()

	id := db.NewUUID()
	owner := db.NewUUID()
	sourceRef := model.StagingObjectKey(id, "clip.mp4")
	v := model.Video{
		ID:        id,
		OwnerID:   owner,
		OwnerName: "Sam",
		City:      "Lyon",
		Title:     "audition",
		Status:    model.VideoStatusUploaded,
		SourceRef: sourceRef,
	}
	if err := h.videoRepo.Create(context.Background(), &v); err != nil {
		t.Fatalf("insert video: %v", err)
	}

	if withObject {
		payload := testutil.GenerateMP4(4096)
		err := h.buckets.Staging.SaveFile(
			context.Background(), sourceRef,
			bytes.NewReader(payload), int64(len(payload)),
			map[string]string{"Content-Type": "video/mp4"},
		)
		if err != nil {
			t.Fatalf("upload staging object: %v", err)
		}
	}
	return id, owner
}

func waitSettled(t *testing.T, jobRepo *mariadb.JobRepository, jobID db.UUID) *model.ProcessingJob {
	t.Helper()

	deadline := time.Now().Add(15 * time.Second)
	for {
		job, err := jobRepo.GetByID(context.Background(), jobID)
		if err != nil {
			t.Fatalf("GetByID job: %v", err)
		}
		if job.Terminal() {
			return job
		}
		if time.Now().After(deadline) {
			t.Fatalf("job #%s never settled, still %q", jobID, job.State)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

func TestProcessVideoTaskIntegration_Success(t *testing.T) {
	h := setupProcessing(t)
	defer h.cleanup()

	videoID, ownerID := h.insertUploaded(t, true)

	dispatcher := task.NewDispatcher(RedisAddr, "")
	defer dispatcher.Close()
	submitter := processingSvc.NewJobSubmitter(h.videoRepo, h.jobRepo, dispatcher, db.NewUUID)

	jobID, err := submitter.Submit(context.Background(), videoID, ownerID, false)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	job := waitSettled(t, h.jobRepo, jobID)
	if job.State != model.JobStateSucceeded {
		reason := ""
		if job.FailureReason != nil {
			reason = *job.FailureReason
		}
		t.Fatalf("expected job to succeed, got %q (%s)", job.State, reason)
	}
	if job.ResultKey == nil || *job.ResultKey != model.ProcessedObjectKey(videoID) {
		t.Errorf("expected the processed object key on the settled job, got %v", job.ResultKey)
	}

	video, err := h.videoRepo.GetByID(context.Background(), videoID)
	if err != nil {
		t.Fatalf("GetByID video: %v", err)
	}
	if video.Status != model.VideoStatusProcessed {
		t.Errorf("expected video status %q, got %q", model.VideoStatusProcessed, video.Status)
	}
	if video.ProcessedKey == nil || *video.ProcessedKey != model.ProcessedObjectKey(videoID) {
		t.Errorf("expected the processed object key on the video, got %v", video.ProcessedKey)
	}

	exists, err := h.buckets.Processed.FileExists(context.Background(), model.ProcessedObjectKey(videoID))
	if err != nil {
		t.Fatalf("FileExists: %v", err)
	}
	if !exists {
		t.Error("expected the transcoded object in the processed bucket")
	}
}

func TestProcessVideoTaskIntegration_MissingSourceFails(t *testing.T) {
	h := setupProcessing(t)
	defer h.cleanup()

	videoID, ownerID := h.insertUploaded(t, false)

	dispatcher := task.NewDispatcher(RedisAddr, "")
	defer dispatcher.Close()
	submitter := processingSvc.NewJobSubmitter(h.videoRepo, h.jobRepo, dispatcher, db.NewUUID)

	jobID, err := submitter.Submit(context.Background(), videoID, ownerID, false)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	job := waitSettled(t, h.jobRepo, jobID)
	if job.State != model.JobStateFailed {
		t.Fatalf("expected job to fail, got %q", job.State)
	}
	if job.FailureReason == nil || *job.FailureReason == "" {
		t.Error("expected a failure reason on the settled job")
	}

	video, err := h.videoRepo.GetByID(context.Background(), videoID)
	if err != nil {
		t.Fatalf("GetByID video: %v", err)
	}
	if video.Status != model.VideoStatusFailed {
		t.Errorf("expected video status %q, got %q", model.VideoStatusFailed, video.Status)
	}
}
