package main

import (
	"context"
	"log"

	"github.com/talenthub/videorank-ms-go/internal/config"
	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/repository/mariadb"
	processingSvc "github.com/talenthub/videorank-ms-go/internal/usecase/processing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌  Configuration error: %v", err)
	}

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("DB close error: %v", err)
		}
	}()

	jobRepo := mariadb.NewJobRepository(database.DB)

	pruner := processingSvc.NewJobPruner(jobRepo)
	deleted, err := pruner.PruneJobs(context.Background(), cfg.JobRetention)
	if err != nil {
		log.Fatalf("❌  Job pruning failed: %v", err)
	}
	log.Printf("✅  Job pruning completed, %d job(s) removed", deleted)
}

func initDb(cfg *config.Settings) *db.Database {
	log.Println("initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		log.Fatalf("❌  Failed to connect to db: %v", err)
	}
	return database
}
