package vote

import (
	"context"
	"fmt"

	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

type voteListerSrv struct {
	repo port.VoteRepository
	cap  int
}

// compile-time check: *voteListerSrv must satisfy port.VoteLister
var _ port.VoteLister = (*voteListerSrv)(nil)

func NewVoteLister(repo port.VoteRepository, cap int) port.VoteLister {
	return &voteListerSrv{repo: repo, cap: cap}
}

// MyVotes returns the voter's active votes plus cap accounting. The result is
// always served from the ledger, never a cache, so a voter sees their own
// vote immediately after casting it.
func (s *voteListerSrv) MyVotes(ctx context.Context, voterID db.UUID) (*port.MyVotesOutput, error) {
	videoIDs, err := s.repo.ListByVoter(ctx, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes for voter #%s: %w", voterID, err)
	}
	if videoIDs == nil {
		videoIDs = make([]db.UUID, 0)
	}

	used := len(videoIDs)
	remaining := s.cap - used
	if remaining < 0 {
		remaining = 0
	}

	return &port.MyVotesOutput{
		VideoIDs:  videoIDs,
		Used:      used,
		Remaining: remaining,
	}, nil
}
