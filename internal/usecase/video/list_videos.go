package video

import (
	"context"
	"fmt"
	"time"

	"github.com/talenthub/videorank-ms-go/internal/model"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type listerSrv struct {
	repo          port.VideoRepository
	processedStrg port.Storage
	downloadTTL   time.Duration
}

// compile-time check: *listerSrv must satisfy both listing ports
var (
	_ port.VideoLister       = (*listerSrv)(nil)
	_ port.PublicVideoLister = (*listerSrv)(nil)
)

func NewVideoLister(repo port.VideoRepository, processedStrg port.Storage, downloadTTL time.Duration) *listerSrv {
	return &listerSrv{repo: repo, processedStrg: processedStrg, downloadTTL: downloadTTL}
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *listerSrv) ListVideos(ctx context.Context, filter port.VideoListFilter) ([]model.Video, error) {
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset)
	return s.repo.List(ctx, filter)
}

// ListPublicVideos returns only processed videos, newest first, shaped for
// the public gallery. Download URLs are presigned per call; the database only
// holds object keys.
func (s *listerSrv) ListPublicVideos(ctx context.Context, limit, offset int) (*port.PublicVideosOutput, error) {
	limit, offset = clampPage(limit, offset)

	videos, err := s.repo.ListPublic(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]port.PublicVideoItem, 0, len(videos))
	for _, v := range videos {
		item := port.PublicVideoItem{
			VideoID:   v.ID,
			Title:     v.Title,
			Author:    v.OwnerName,
			City:      v.City,
			Votes:     v.VoteCount,
			CreatedAt: v.CreatedAt,
		}
		if v.ProcessedKey != nil && *v.ProcessedKey != "" {
			url, err := s.processedStrg.GeneratePresignedDownloadURL(ctx, *v.ProcessedKey, s.downloadTTL)
			if err != nil {
				return nil, fmt.Errorf("failed to presign processed rendition for video #%s: %w", v.ID, err)
			}
			item.ProcessedURL = url
		}
		if v.ThumbKey != nil && *v.ThumbKey != "" {
			url, err := s.processedStrg.GeneratePresignedDownloadURL(ctx, *v.ThumbKey, s.downloadTTL)
			if err != nil {
				return nil, fmt.Errorf("failed to presign thumbnail for video #%s: %w", v.ID, err)
			}
			item.ThumbURL = url
		}
		items = append(items, item)
	}
	return &port.PublicVideosOutput{Items: items}, nil
}
