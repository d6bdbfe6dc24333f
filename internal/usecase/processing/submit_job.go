package processing

import (
	"context"
	"fmt"

	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/domain"
	"github.com/talenthub/videorank-ms-go/internal/metrics"
	"github.com/talenthub/videorank-ms-go/internal/model"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

type submitterSrv struct {
	videoRepo  port.VideoRepository
	jobRepo    port.JobRepository
	dispatcher port.TaskDispatcher
	genUUID    UUIDGen
}

type UUIDGen func() db.UUID

// compile-time check: *submitterSrv must satisfy port.JobSubmitter
var _ port.JobSubmitter = (*submitterSrv)(nil)

func NewJobSubmitter(videoRepo port.VideoRepository, jobRepo port.JobRepository, dispatcher port.TaskDispatcher, genUUID UUIDGen) port.JobSubmitter {
	return &submitterSrv{videoRepo: videoRepo, jobRepo: jobRepo, dispatcher: dispatcher, genUUID: genUUID}
}

// Submit creates a queued job for the uploaded video and enqueues the
// transcode task. Only the owner or an admin may submit. The video moves to
// processing and the job row are written in one transaction, so a second
// Submit for the same video fails instead of spawning a second job.
func (s *submitterSrv) Submit(ctx context.Context, videoID, requesterID db.UUID, isAdmin bool) (db.UUID, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return db.UUID{}, fmt.Errorf("failed to load video #%s: %w", videoID, err)
	}
	if video.OwnerID != requesterID && !isAdmin {
		return db.UUID{}, domain.ErrForbidden
	}

	job := model.ProcessingJob{
		ID:      s.genUUID(),
		VideoID: videoID,
		State:   model.JobStateQueued,
	}
	if err := s.jobRepo.CreateForUpload(ctx, &job); err != nil {
		return db.UUID{}, fmt.Errorf("failed to create processing job for video #%s: %w", videoID, err)
	}

	if err := s.dispatcher.EnqueueProcessVideo(ctx, job.ID, videoID, video.SourceRef); err != nil {
		return db.UUID{}, fmt.Errorf("failed to enqueue processing task for job #%s: %w", job.ID, err)
	}

	metrics.JobsSubmitted.Inc()
	return job.ID, nil
}
