package port

import (
	"context"

	"github.com/talenthub/videorank-ms-go/internal/db"
)

// TaskDispatcher enqueues asynchronous transcoding work for the worker.
type TaskDispatcher interface {
	EnqueueProcessVideo(ctx context.Context, jobID, videoID db.UUID, sourceRef string) error
}
