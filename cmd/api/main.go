package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/talenthub/videorank-ms-go/internal/cache"
	"github.com/talenthub/videorank-ms-go/internal/config"
	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/handler/api"
	"github.com/talenthub/videorank-ms-go/internal/logger"
	cMiddleware "github.com/talenthub/videorank-ms-go/internal/middleware"
	"github.com/talenthub/videorank-ms-go/internal/port"
	"github.com/talenthub/videorank-ms-go/internal/renderer"
	"github.com/talenthub/videorank-ms-go/internal/repository/mariadb"
	"github.com/talenthub/videorank-ms-go/internal/storage"
	"github.com/talenthub/videorank-ms-go/internal/task"
	processingSvc "github.com/talenthub/videorank-ms-go/internal/usecase/processing"
	rankingSvc "github.com/talenthub/videorank-ms-go/internal/usecase/ranking"
	videoSvc "github.com/talenthub/videorank-ms-go/internal/usecase/video"
	voteSvc "github.com/talenthub/videorank-ms-go/internal/usecase/vote"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx)

	strg := initStorage(ctx, cfg)
	stagingStrg := initBucket(ctx, strg, cfg.UploadsBucket)
	processedStrg := initBucket(ctx, strg, cfg.ProcessedBucket)

	videoRepo := mariadb.NewVideoRepository(database.DB)
	voteRepo := mariadb.NewVoteRepository(database.DB)
	jobRepo := mariadb.NewJobRepository(database.DB)

	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured — caching is disabled")
	}

	rendererSvc := renderer.NewHTTPRenderer(ca, cfg.RankingTTL)

	// identity routes: everything that writes or answers "who am I" questions
	// sits behind the JWT middleware
	r.Group(func(r chi.Router) {
		r.Use(cMiddleware.WithAuth(cfg.JWTPublicKey))

		creatorSvc := videoSvc.NewVideoCreator(videoRepo, stagingStrg, db.NewUUID, cfg.MaxTitleLength, cfg.UploadURLTTL)
		r.Post("/videos", api.CreateVideoHandler(creatorSvc))

		submitterSvc := processingSvc.NewJobSubmitter(videoRepo, jobRepo, dispatcher, db.NewUUID)
		r.With(cMiddleware.WithVideoID()).
			Post("/videos/{id}/submit", api.SubmitUploadHandler(submitterSvc))

		getterSvc := videoSvc.NewVideoGetter(videoRepo, processedStrg, cfg.DownloadURLTTL)
		r.With(cMiddleware.WithVideoID()).
			Get("/videos/{id}", api.GetVideoHandler(getterSvc))

		deleterSvc := videoSvc.NewVideoDeleter(videoRepo, ca, stagingStrg, processedStrg)
		r.With(cMiddleware.WithVideoID()).
			Delete("/videos/{id}", api.DeleteVideoHandler(deleterSvc))

		voterSvc := voteSvc.NewVoter(voteRepo, ca, cfg.VoteCap)
		r.With(cMiddleware.WithVideoID()).
			Post("/public/videos/{id}/vote", api.VoteHandler(voterSvc))
		r.With(cMiddleware.WithVideoID()).
			Delete("/public/videos/{id}/vote", api.UnvoteHandler(voterSvc))

		voteListerSvc := voteSvc.NewVoteLister(voteRepo, cfg.VoteCap)
		r.Get("/public/my-votes", api.MyVotesHandler(voteListerSvc))
	})

	// anonymous reads: the gallery, rankings, job polling and the Prometheus
	// scrape endpoint take no bearer token
	listerSvc := videoSvc.NewVideoLister(videoRepo, processedStrg, cfg.DownloadURLTTL)
	r.Get("/public/videos", api.ListPublicVideosHandler(rendererSvc, listerSvc))

	rankingComputerSvc := rankingSvc.NewRankingComputer(videoRepo)
	r.Get("/public/rankings", api.RankingsHandler(rendererSvc, rankingComputerSvc))

	pollerSvc := processingSvc.NewJobPoller(jobRepo, processedStrg, cfg.DownloadURLTTL)
	r.With(cMiddleware.WithJobID()).
		Get("/jobs/{id}", api.GetJobHandler(pollerSvc))

	r.Handle("/metrics", promhttp.Handler())

	listenRouter(ctx, r, cfg, database)
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

func initRouter(ctx context.Context) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
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

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
