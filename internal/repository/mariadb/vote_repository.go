package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/go-sql-driver/mysql"
	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/domain"
	"github.com/talenthub/videorank-ms-go/internal/model"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

const mysqlErrDuplicateEntry = 1062

type VoteRepository struct {
	db *sql.DB
}

// compile-time check: *VoteRepository must satisfy port.VoteRepository
var _ port.VoteRepository = (*VoteRepository)(nil)

func NewVoteRepository(db *sql.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// CastVote runs the whole check-then-act sequence inside one transaction:
// the video row and the voter's vote rows are locked before the cap check,
// so concurrent votes by the same voter (cap) or on the same video (counter)
// serialize instead of racing.
func (r *VoteRepository) CastVote(ctx context.Context, voterID, videoID db.UUID, cap int) (int, error) {
	log.Printf("recording vote by #%s on video #%s...", voterID, videoID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx, `SELECT status FROM videos WHERE id = ? FOR UPDATE`, videoID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrVideoNotFound
	}
	if err != nil {
		return 0, err
	}
	if status != model.VideoStatusProcessed {
		return 0, domain.ErrInvalidState
	}

	var existing int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM votes WHERE voter_id = ? AND video_id = ? FOR UPDATE`,
		voterID, videoID,
	).Scan(&existing); err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, domain.ErrDuplicateVote
	}

	var active int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM votes WHERE voter_id = ? FOR UPDATE`,
		voterID,
	).Scan(&active); err != nil {
		return 0, err
	}
	if active >= cap {
		return 0, domain.ErrVoteCapExceeded
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO votes (voter_id, video_id) VALUES (?, ?)`,
		voterID, videoID,
	); err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return 0, domain.ErrDuplicateVote
		}
		return 0, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE videos SET vote_count = vote_count + 1 WHERE id = ?`,
		videoID,
	); err != nil {
		return 0, err
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT vote_count FROM videos WHERE id = ?`, videoID).Scan(&count); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// RemoveVote deletes the vote row and decrements the cached counter in one
// transaction. Removing any vote frees one slot in the voter's cap.
func (r *VoteRepository) RemoveVote(ctx context.Context, voterID, videoID db.UUID) (int, error) {
	log.Printf("removing vote by #%s on video #%s...", voterID, videoID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM votes WHERE voter_id = ? AND video_id = ?`,
		voterID, videoID,
	)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, domain.ErrVoteNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE videos SET vote_count = GREATEST(vote_count - 1, 0) WHERE id = ?`,
		videoID,
	); err != nil {
		return 0, err
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT vote_count FROM videos WHERE id = ?`, videoID).Scan(&count); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *VoteRepository) ListByVoter(ctx context.Context, voterID db.UUID) ([]db.UUID, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT video_id FROM votes WHERE voter_id = ? ORDER BY created_at ASC`,
		voterID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []db.UUID
	for rows.Next() {
		var id db.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
