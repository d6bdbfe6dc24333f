package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/domain"
	"github.com/talenthub/videorank-ms-go/internal/model"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

type VideoRepository struct {
	db *sql.DB
}

// compile-time check: *VideoRepository must satisfy port.VideoRepository
var _ port.VideoRepository = (*VideoRepository)(nil)

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

const videoColumns = `id, owner_id, owner_name, city, title, status, source_ref, processed_key, thumb_key, failure_message, vote_count, created_at, updated_at`

func scanVideo(row interface{ Scan(...any) error }) (*model.Video, error) {
	var v model.Video
	if err := row.Scan(
		&v.ID, &v.OwnerID, &v.OwnerName, &v.City,
		&v.Title, &v.Status, &v.SourceRef,
		&v.ProcessedKey, &v.ThumbKey, &v.FailureMessage,
		&v.VoteCount, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	log.Printf("creating database record for video #%s, at status %q...", video.ID, video.Status)

	const query = `
      INSERT INTO videos
        (id, owner_id, owner_name, city, title, status, source_ref, processed_key, thumb_key, failure_message, vote_count)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		video.ID, video.OwnerID, video.OwnerName, video.City,
		video.Title, video.Status, video.SourceRef,
		video.ProcessedKey, video.ThumbKey, video.FailureMessage,
		video.VoteCount,
	)
	return err
}

func (r *VideoRepository) GetByID(ctx context.Context, id db.UUID) (*model.Video, error) {
	const query = `SELECT ` + videoColumns + ` FROM videos WHERE id = ?`

	video, err := scanVideo(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	return video, nil
}

func (r *VideoRepository) List(ctx context.Context, filter port.VideoListFilter) ([]model.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos`
	args := make([]any, 0, 3)
	if filter.OwnerID != nil {
		query += ` WHERE owner_id = ?`
		args = append(args, *filter.OwnerID)
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset)

	return r.queryVideos(ctx, query, args...)
}

func (r *VideoRepository) ListPublic(ctx context.Context, limit, offset int) ([]model.Video, error) {
	const query = `
      SELECT ` + videoColumns + `
      FROM videos
      WHERE status = ? AND processed_key IS NOT NULL
      ORDER BY created_at DESC
      LIMIT ? OFFSET ?
    `
	return r.queryVideos(ctx, query, model.VideoStatusProcessed, limit, offset)
}

func (r *VideoRepository) queryVideos(ctx context.Context, query string, args ...any) ([]model.Video, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

// MarkProcessed records the processed object keys and flips processing →
// processed. The WHERE clause on status makes the transition a
// compare-and-swap: a stale or duplicate caller gets ErrInvalidState.
func (r *VideoRepository) MarkProcessed(ctx context.Context, id db.UUID, processedKey, thumbKey string) error {
	log.Printf("marking video #%s as processed...", id)

	return r.casStatus(ctx, id,
		`UPDATE videos SET status = ?, processed_key = ?, thumb_key = NULLIF(?, '') WHERE id = ? AND status = ?`,
		model.VideoStatusProcessed, processedKey, thumbKey, id, model.VideoStatusProcessing,
	)
}

func (r *VideoRepository) MarkFailed(ctx context.Context, id db.UUID, reason string) error {
	log.Printf("marking video #%s as failed: %s", id, reason)

	return r.casStatus(ctx, id,
		`UPDATE videos SET status = ?, failure_message = ? WHERE id = ? AND status = ?`,
		model.VideoStatusFailed, reason, id, model.VideoStatusProcessing,
	)
}

func (r *VideoRepository) casStatus(ctx context.Context, id db.UUID, query string, args ...any) error {
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

	// Zero rows touched: either the video is gone or it is not in the
	// expected prior status.
	var one int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM videos WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrVideoNotFound
	}
	if err != nil {
		return err
	}
	return domain.ErrInvalidState
}

// DeleteCascade removes the video, its vote rows, and fails any live job in
// one transaction so a concurrent vote cannot land mid-deletion.
func (r *VideoRepository) DeleteCascade(ctx context.Context, id db.UUID) error {
	log.Printf("deleting video #%s and its votes...", id)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE video_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE processing_jobs SET state = ?, failure_reason = ? WHERE video_id = ? AND state IN (?, ?)`,
		model.JobStateFailed, "video deleted", id, model.JobStateQueued, model.JobStateRunning,
	); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrVideoNotFound
	}
	return tx.Commit()
}

func (r *VideoRepository) RankingRows(ctx context.Context, city string) ([]port.RankingRow, error) {
	query := `
      SELECT id, title, owner_name, city, vote_count, created_at
      FROM videos
      WHERE status = ?
    `
	args := []any{model.VideoStatusProcessed}
	if city != "" {
		query += ` AND city = ?`
		args = append(args, city)
	}
	// Earlier upload wins a tie; id breaks exact created_at collisions so the
	// order is total and repeat reads are deterministic.
	query += ` ORDER BY vote_count DESC, created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []port.RankingRow
	for rows.Next() {
		var row port.RankingRow
		if err := rows.Scan(&row.VideoID, &row.Title, &row.OwnerName, &row.City, &row.Score, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
