package processing

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/talenthub/videorank-ms-go/internal/port"
)

type prunerSrv struct {
	jobRepo port.JobRepository
}

// compile-time check: *prunerSrv must satisfy port.JobPruner
var _ port.JobPruner = (*prunerSrv)(nil)

func NewJobPruner(jobRepo port.JobRepository) port.JobPruner {
	return &prunerSrv{jobRepo: jobRepo}
}

// PruneJobs deletes succeeded and failed jobs whose last update is older than
// the retention window. Queued and running jobs are never touched.
func (s *prunerSrv) PruneJobs(ctx context.Context, retention time.Duration) (int64, error) {
	log.Printf("pruning settled jobs older than %s...", retention)

	cutoff := time.Now().Add(-retention)
	deleted, err := s.jobRepo.DeleteTerminalBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune settled jobs: %w", err)
	}

	log.Printf("pruned %d settled job(s)", deleted)
	return deleted, nil
}
