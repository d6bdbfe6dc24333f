package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/domain"
	"github.com/talenthub/videorank-ms-go/internal/model"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

type JobRepository struct {
	db *sql.DB
}

// compile-time check: *JobRepository must satisfy port.JobRepository
var _ port.JobRepository = (*JobRepository)(nil)

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, video_id, state, result_key, failure_reason, created_at, updated_at`

// CreateForUpload inserts the job row and flips the video from uploaded to
// processing in one transaction. The unique key on video_id rejects a second
// live job; the status CAS rejects a video that already left uploaded.
func (r *JobRepository) CreateForUpload(ctx context.Context, job *model.ProcessingJob) error {
	log.Printf("creating processing job #%s for video #%s...", job.ID, job.VideoID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE videos SET status = ? WHERE id = ? AND status = ?`,
		model.VideoStatusProcessing, job.VideoID, model.VideoStatusUploaded,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM videos WHERE id = ?`, job.VideoID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrVideoNotFound
		}
		if err != nil {
			return err
		}
		return domain.ErrInvalidState
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO processing_jobs (id, video_id, state) VALUES (?, ?, ?)`,
		job.ID, job.VideoID, model.JobStateQueued,
	); err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return domain.ErrDuplicateJob
		}
		return err
	}

	return tx.Commit()
}

func (r *JobRepository) GetByID(ctx context.Context, id db.UUID) (*model.ProcessingJob, error) {
	const query = `SELECT ` + jobColumns + ` FROM processing_jobs WHERE id = ?`

	var j model.ProcessingJob
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&j.ID, &j.VideoID, &j.State,
		&j.ResultKey, &j.FailureReason,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// MarkRunning flips queued → running; transitions are monotonic, so a job
// that already left queued yields ErrInvalidState.
func (r *JobRepository) MarkRunning(ctx context.Context, id db.UUID) error {
	return r.casState(ctx, id,
		`UPDATE processing_jobs SET state = ? WHERE id = ? AND state = ?`,
		model.JobStateRunning, id, model.JobStateQueued,
	)
}

func (r *JobRepository) MarkSucceeded(ctx context.Context, id db.UUID, resultKey string) error {
	log.Printf("marking processing job #%s as succeeded...", id)

	return r.casState(ctx, id,
		`UPDATE processing_jobs SET state = ?, result_key = ? WHERE id = ? AND state = ?`,
		model.JobStateSucceeded, resultKey, id, model.JobStateRunning,
	)
}

func (r *JobRepository) MarkFailed(ctx context.Context, id db.UUID, reason string) error {
	log.Printf("marking processing job #%s as failed: %s", id, reason)

	return r.casState(ctx, id,
		`UPDATE processing_jobs SET state = ?, failure_reason = ? WHERE id = ? AND state IN (?, ?)`,
		model.JobStateFailed, reason, id, model.JobStateQueued, model.JobStateRunning,
	)
}

func (r *JobRepository) casState(ctx context.Context, id db.UUID, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	var one int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM processing_jobs WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrJobNotFound
	}
	if err != nil {
		return err
	}
	return domain.ErrInvalidState
}

// DeleteTerminalBefore prunes settled jobs older than the given time.
func (r *JobRepository) DeleteTerminalBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM processing_jobs WHERE state IN (?, ?) AND updated_at < ?`,
		model.JobStateSucceeded, model.JobStateFailed, before,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
