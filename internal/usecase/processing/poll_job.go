package processing

import (
	"context"
	"fmt"
	"time"

	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

type pollerSrv struct {
	jobRepo       port.JobRepository
	processedStrg port.Storage
	downloadTTL   time.Duration
}

// compile-time check: *pollerSrv must satisfy port.JobPoller
var _ port.JobPoller = (*pollerSrv)(nil)

func NewJobPoller(jobRepo port.JobRepository, processedStrg port.Storage, downloadTTL time.Duration) port.JobPoller {
	return &pollerSrv{jobRepo: jobRepo, processedStrg: processedStrg, downloadTTL: downloadTTL}
}

// Poll reports the job's current state. Only the object key is persisted, so
// a succeeded job gets a freshly presigned result URL on every poll;
// FailureReason is only set once the job has failed.
func (s *pollerSrv) Poll(ctx context.Context, jobID db.UUID) (*port.JobStatusOutput, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job #%s: %w", jobID, err)
	}

	out := &port.JobStatusOutput{
		JobID:         job.ID,
		State:         job.State,
		FailureReason: job.FailureReason,
	}
	if job.ResultKey != nil && *job.ResultKey != "" {
		url, err := s.processedStrg.GeneratePresignedDownloadURL(ctx, *job.ResultKey, s.downloadTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to presign result for job #%s: %w", jobID, err)
		}
		out.ResultURL = &url
	}
	return out, nil
}
