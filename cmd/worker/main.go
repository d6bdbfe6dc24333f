package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/talenthub/videorank-ms-go/internal/cache"
	"github.com/talenthub/videorank-ms-go/internal/config"
	"github.com/talenthub/videorank-ms-go/internal/db"
	workerHandler "github.com/talenthub/videorank-ms-go/internal/handler/worker"
	"github.com/talenthub/videorank-ms-go/internal/port"
	"github.com/talenthub/videorank-ms-go/internal/repository/mariadb"
	"github.com/talenthub/videorank-ms-go/internal/storage"
	"github.com/talenthub/videorank-ms-go/internal/task"
	"github.com/talenthub/videorank-ms-go/internal/transcoder"
	processingSvc "github.com/talenthub/videorank-ms-go/internal/usecase/processing"

	"github.com/talenthub/videorank-ms-go/internal/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	strg := initStorage(ctx, cfg)
	stagingStrg := initBucket(ctx, strg, cfg.UploadsBucket)
	processedStrg := initBucket(ctx, strg, cfg.ProcessedBucket)

	videoRepo := mariadb.NewVideoRepository(database.DB)
	jobRepo := mariadb.NewJobRepository(database.DB)
	ca := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)

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

	runWorker(ctx, mux, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(ctx context.Context, cfg *config.Settings) *storage.Strg {
	strg, err := storage.NewMinioClient(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBucket(ctx context.Context, strg *storage.Strg, bucket string) port.Storage {
	bucketStrg, err := strg.WithBucket(bucket)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", bucket, err)
		os.Exit(1)
	}
	return bucketStrg
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{task.QueueVideos: 1},
	})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	// Close DB
	if err := database.Close(); err != nil {
		logger.Warnf(ctx, "DB close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
