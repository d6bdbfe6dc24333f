package worker

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/port"
	"github.com/talenthub/videorank-ms-go/internal/task"
)

// ProcessVideoHandler handles a process-video task: it flips the job to
// running, runs the transcode, and settles the job with the outcome. A
// transcode failure settles the job as failed and is NOT returned, so the
// queue does not redeliver a task whose failure is already recorded.
func ProcessVideoHandler(ctx context.Context, p task.ProcessVideoPayload, starter port.JobStarter, transcoder port.Transcoder, completer port.JobCompleter) error {
	jobID, err := uuid.Parse(p.JobID)
	if err != nil {
		log.Printf("❌  Invalid job ID %q: %v", p.JobID, err)
		return err
	}
	videoID, err := uuid.Parse(p.VideoID)
	if err != nil {
		log.Printf("❌  Invalid video ID %q: %v", p.VideoID, err)
		return err
	}

	if err := starter.Start(ctx, db.UUID(jobID)); err != nil {
		log.Printf("❌  Failed to start job #%s: %v", jobID, err)
		return err
	}

	result, tErr := transcoder.Process(ctx, db.UUID(videoID), p.SourceRef)

	in := port.JobCompletionInput{JobID: db.UUID(jobID)}
	if tErr != nil {
		log.Printf("❌  Transcode failed for video #%s: %v", videoID, tErr)
		in.Reason = tErr.Error()
	} else {
		in.Succeeded = true
		in.ProcessedKey = result.ProcessedKey
		in.ThumbKey = result.ThumbKey
	}

	if err := completer.Complete(ctx, in); err != nil {
		log.Printf("❌  Failed to settle job #%s: %v", jobID, err)
		return err
	}

	if tErr == nil {
		log.Printf("✅  Successfully processed video #%s (job #%s)", videoID, jobID)
	}
	return nil
}
