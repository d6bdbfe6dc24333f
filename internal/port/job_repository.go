package port

import (
	"context"
	"time"

	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/model"
)

// JobRepository defines persistence operations for processing jobs.
//
// CreateForUpload inserts the job row and flips its video from uploaded to
// processing in one transaction, so a video can never gain two live jobs and
// a job can never exist for a video that already left uploaded.
type JobRepository interface {
	CreateForUpload(ctx context.Context, job *model.ProcessingJob) error
	GetByID(ctx context.Context, id db.UUID) (*model.ProcessingJob, error)
	MarkRunning(ctx context.Context, id db.UUID) error
	MarkSucceeded(ctx context.Context, id db.UUID, resultKey string) error
	MarkFailed(ctx context.Context, id db.UUID, reason string) error
	DeleteTerminalBefore(ctx context.Context, before time.Time) (int64, error)
}
