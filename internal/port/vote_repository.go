package port

import (
	"context"

	"github.com/talenthub/videorank-ms-go/internal/db"
)

// VoteRepository defines persistence operations for the vote ledger.
//
// CastVote and RemoveVote each run as a single transaction covering the vote
// row and the video's cached counter; both return the video's new vote count.
// CastVote enforces, in order: the video exists and is processed
// (domain.ErrVideoNotFound / domain.ErrInvalidState), no active vote for the
// pair exists (domain.ErrDuplicateVote), and the voter's active count is
// below cap (domain.ErrVoteCapExceeded).
type VoteRepository interface {
	CastVote(ctx context.Context, voterID, videoID db.UUID, cap int) (int, error)
	RemoveVote(ctx context.Context, voterID, videoID db.UUID) (int, error)
	ListByVoter(ctx context.Context, voterID db.UUID) ([]db.UUID, error)
}
