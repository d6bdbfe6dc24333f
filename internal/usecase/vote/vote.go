package vote

import (
	"context"
	"errors"
	"log"

	"github.com/go-sql-driver/mysql"
	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/domain"
	"github.com/talenthub/videorank-ms-go/internal/metrics"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

// maxTxRetries bounds transparent retries of serialization failures.
// Constraint violations (cap, duplicate) are never retried: retrying cannot
// change their outcome.
const maxTxRetries = 3

const (
	mysqlErrLockDeadlock = 1213
	mysqlErrLockWait     = 1205
)

type voterSrv struct {
	repo  port.VoteRepository
	cache port.Cache
	cap   int
}

// compile-time check: *voterSrv must satisfy port.Voter
var _ port.Voter = (*voterSrv)(nil)

func NewVoter(repo port.VoteRepository, cache port.Cache, cap int) port.Voter {
	return &voterSrv{repo: repo, cache: cache, cap: cap}
}

// Vote records one capped vote and returns the video's new vote count.
func (s *voterSrv) Vote(ctx context.Context, voterID, videoID db.UUID) (int, error) {
	count, err := withTxRetry(func() (int, error) {
		return s.repo.CastVote(ctx, voterID, videoID, s.cap)
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateVote):
			metrics.VotesRejected.WithLabelValues("duplicate").Inc()
		case errors.Is(err, domain.ErrVoteCapExceeded):
			metrics.VotesRejected.WithLabelValues("cap_exceeded").Inc()
		case errors.Is(err, domain.ErrVideoNotFound), errors.Is(err, domain.ErrInvalidState):
			metrics.VotesRejected.WithLabelValues("not_votable").Inc()
		}
		return 0, err
	}

	metrics.VotesCast.Inc()
	s.invalidateViews(ctx, videoID)
	return count, nil
}

// Unvote removes the voter's vote from the video, freeing one cap slot.
func (s *voterSrv) Unvote(ctx context.Context, voterID, videoID db.UUID) (int, error) {
	count, err := withTxRetry(func() (int, error) {
		return s.repo.RemoveVote(ctx, voterID, videoID)
	})
	if err != nil {
		return 0, err
	}

	metrics.VotesRemoved.Inc()
	s.invalidateViews(ctx, videoID)
	return count, nil
}

func (s *voterSrv) invalidateViews(ctx context.Context, videoID db.UUID) {
	if err := s.cache.InvalidateViews(ctx); err != nil {
		log.Printf("failed to invalidate cached views after vote change on video #%s: %v", videoID, err)
	}
}

// withTxRetry re-runs fn on MySQL lock conflicts, up to maxTxRetries.
func withTxRetry(fn func() (int, error)) (int, error) {
	var count int
	var err error
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		count, err = fn()
		if !isLockConflict(err) {
			return count, err
		}
		log.Printf("vote transaction conflict (attempt %d/%d): %v", attempt+1, maxTxRetries, err)
	}
	return count, err
}

func isLockConflict(err error) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	return mysqlErr.Number == mysqlErrLockDeadlock || mysqlErr.Number == mysqlErrLockWait
}
