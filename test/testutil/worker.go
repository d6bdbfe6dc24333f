package testutil

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/talenthub/videorank-ms-go/internal/cache"
	"github.com/talenthub/videorank-ms-go/internal/db"
	workerHandler "github.com/talenthub/videorank-ms-go/internal/handler/worker"
	"github.com/talenthub/videorank-ms-go/internal/logger"
	"github.com/talenthub/videorank-ms-go/internal/port"
	"github.com/talenthub/videorank-ms-go/internal/repository/mariadb"
	"github.com/talenthub/videorank-ms-go/internal/task"
	"github.com/talenthub/videorank-ms-go/internal/transcoder"
	processingSvc "github.com/talenthub/videorank-ms-go/internal/usecase/processing"
)

// StartWorker starts an asynq worker processing transcode tasks.
// It returns a function to gracefully shut down the worker.
func StartWorker(dbConn *db.Database, stagingStrg, processedStrg port.Storage, redisAddr string) func() {
	videoRepo := mariadb.NewVideoRepository(dbConn.DB)
	jobRepo := mariadb.NewJobRepository(dbConn.DB)
	ca := cache.NewNoop()

	starterSvc := processingSvc.NewJobStarter(jobRepo)
	transcoderSvc := transcoder.NewStorageTranscoder(stagingStrg, processedStrg)
	completerSvc := processingSvc.NewJobCompleter(jobRepo, videoRepo, ca)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeProcessVideo, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseProcessVideoPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.ProcessVideoHandler(ctx, p, starterSvc, transcoderSvc, completerSvc)
	})

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{task.QueueVideos: 1},
	})
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "worker stopped: %v", err)
		}
	}()

	return func() {
		srv.Shutdown()
	}
}
