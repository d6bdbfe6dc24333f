package ranking

import (
	"context"
	"fmt"

	"github.com/talenthub/videorank-ms-go/internal/port"
)

type computerSrv struct {
	repo port.VideoRepository
}

// compile-time check: *computerSrv must satisfy port.RankingComputer
var _ port.RankingComputer = (*computerSrv)(nil)

func NewRankingComputer(repo port.VideoRepository) port.RankingComputer {
	return &computerSrv{repo: repo}
}

// ComputeRanking derives the current standings from the vote ledger. Ordering
// and tie-breaking happen in the database; positions are assigned here,
// starting at 1. Two requests against the same vote state always produce the
// same order.
func (s *computerSrv) ComputeRanking(ctx context.Context, city string) (*port.RankingOutput, error) {
	rows, err := s.repo.RankingRows(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("failed to load ranking rows: %w", err)
	}

	entries := make([]port.RankingEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, port.RankingEntry{
			Position: i + 1,
			VideoID:  row.VideoID,
			Title:    row.Title,
			Name:     row.OwnerName,
			City:     row.City,
			Score:    row.Score,
		})
	}

	return &port.RankingOutput{Entries: entries}, nil
}
