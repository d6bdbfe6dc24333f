package task

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

const QueueVideos = "videos"

type Dispatcher struct {
	client *asynq.Client
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c}
}

func (d *Dispatcher) EnqueueProcessVideo(ctx context.Context, jobID, videoID db.UUID, sourceRef string) error {
	t, err := NewProcessVideoTask(jobID.String(), videoID.String(), sourceRef)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t, asynq.Queue(QueueVideos)); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) Close() error {
	return d.client.Close()
}
