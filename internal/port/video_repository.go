package port

import (
	"context"
	"time"

	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/model"
)

// VideoListFilter narrows and paginates video listings.
type VideoListFilter struct {
	Limit   int
	Offset  int
	OwnerID *db.UUID
}

// RankingRow is one aggregate row feeding the ranking computation,
// before positions are assigned.
type RankingRow struct {
	VideoID   db.UUID
	Title     string
	OwnerName string
	City      string
	Score     int
	CreatedAt time.Time
}

// VideoRepository defines persistence operations for videos.
//
// The Mark* methods are compare-and-swap transitions: they only succeed when
// the row is currently in the expected prior status, so a stale or duplicate
// caller gets domain.ErrInvalidState instead of corrupting the lifecycle.
type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, id db.UUID) (*model.Video, error)
	List(ctx context.Context, filter VideoListFilter) ([]model.Video, error)
	ListPublic(ctx context.Context, limit, offset int) ([]model.Video, error)
	MarkProcessed(ctx context.Context, id db.UUID, processedKey, thumbKey string) error
	MarkFailed(ctx context.Context, id db.UUID, reason string) error
	DeleteCascade(ctx context.Context, id db.UUID) error
	RankingRows(ctx context.Context, city string) ([]RankingRow, error)
}
