package processing

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/domain"
	"github.com/talenthub/videorank-ms-go/internal/metrics"
	"github.com/talenthub/videorank-ms-go/internal/model"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

type starterSrv struct {
	jobRepo port.JobRepository
}

// compile-time check: *starterSrv must satisfy port.JobStarter
var _ port.JobStarter = (*starterSrv)(nil)

func NewJobStarter(jobRepo port.JobRepository) port.JobStarter {
	return &starterSrv{jobRepo: jobRepo}
}

// Start flips the job from queued to running. A job that is already running
// or settled is left alone, so a redelivered task does not reset it.
func (s *starterSrv) Start(ctx context.Context, jobID db.UUID) error {
	if err := s.jobRepo.MarkRunning(ctx, jobID); err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			log.Printf("job #%s already started, skipping", jobID)
			return nil
		}
		return fmt.Errorf("failed to start job #%s: %w", jobID, err)
	}
	return nil
}

type completerSrv struct {
	jobRepo   port.JobRepository
	videoRepo port.VideoRepository
	cache     port.Cache
}

// compile-time check: *completerSrv must satisfy port.JobCompleter
var _ port.JobCompleter = (*completerSrv)(nil)

func NewJobCompleter(jobRepo port.JobRepository, videoRepo port.VideoRepository, cache port.Cache) port.JobCompleter {
	return &completerSrv{jobRepo: jobRepo, videoRepo: videoRepo, cache: cache}
}

// Complete settles the job and its video from the transcode outcome. A second
// delivery for a job that has already settled is acknowledged without
// touching anything.
func (s *completerSrv) Complete(ctx context.Context, in port.JobCompletionInput) error {
	job, err := s.jobRepo.GetByID(ctx, in.JobID)
	if err != nil {
		return fmt.Errorf("failed to load job #%s: %w", in.JobID, err)
	}
	if job.Terminal() {
		log.Printf("job #%s already settled as %s, ignoring repeated completion", job.ID, job.State)
		return nil
	}

	if in.Succeeded {
		return s.succeed(ctx, job, in.ProcessedKey, in.ThumbKey)
	}
	return s.fail(ctx, job, in.Reason)
}

func (s *completerSrv) succeed(ctx context.Context, job *model.ProcessingJob, processedKey, thumbKey string) error {
	if err := s.jobRepo.MarkSucceeded(ctx, job.ID, processedKey); err != nil {
		// a concurrent delivery won the race
		if errors.Is(err, domain.ErrInvalidState) {
			log.Printf("job #%s settled concurrently, ignoring", job.ID)
			return nil
		}
		return fmt.Errorf("failed to mark job #%s succeeded: %w", job.ID, err)
	}

	if err := s.videoRepo.MarkProcessed(ctx, job.VideoID, processedKey, thumbKey); err != nil && !errors.Is(err, domain.ErrInvalidState) {
		return fmt.Errorf("failed to mark video #%s processed: %w", job.VideoID, err)
	}

	metrics.JobsSettled.WithLabelValues(model.JobStateSucceeded).Inc()
	s.invalidateViews(ctx, job.VideoID)
	return nil
}

func (s *completerSrv) fail(ctx context.Context, job *model.ProcessingJob, reason string) error {
	if reason == "" {
		reason = "processing failed"
	}

	if err := s.jobRepo.MarkFailed(ctx, job.ID, reason); err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			log.Printf("job #%s settled concurrently, ignoring", job.ID)
			return nil
		}
		return fmt.Errorf("failed to mark job #%s failed: %w", job.ID, err)
	}

	if err := s.videoRepo.MarkFailed(ctx, job.VideoID, reason); err != nil && !errors.Is(err, domain.ErrInvalidState) {
		return fmt.Errorf("failed to mark video #%s failed: %w", job.VideoID, err)
	}

	metrics.JobsSettled.WithLabelValues(model.JobStateFailed).Inc()
	s.invalidateViews(ctx, job.VideoID)
	return nil
}

func (s *completerSrv) invalidateViews(ctx context.Context, videoID db.UUID) {
	if err := s.cache.InvalidateViews(ctx); err != nil {
		log.Printf("failed to invalidate cached views after settling video #%s: %v", videoID, err)
	}
}
