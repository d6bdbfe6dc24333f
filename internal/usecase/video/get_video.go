package video

import (
	"context"
	"fmt"
	"time"

	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

type getterSrv struct {
	repo          port.VideoRepository
	processedStrg port.Storage
	downloadTTL   time.Duration
}

// compile-time check: *getterSrv must satisfy port.VideoGetter
var _ port.VideoGetter = (*getterSrv)(nil)

func NewVideoGetter(repo port.VideoRepository, processedStrg port.Storage, downloadTTL time.Duration) port.VideoGetter {
	return &getterSrv{repo: repo, processedStrg: processedStrg, downloadTTL: downloadTTL}
}

// GetVideo loads the record and presigns fresh download URLs for its
// processed renditions. Keys are what the database holds; a stored URL would
// go dead as soon as its signature expired.
func (s *getterSrv) GetVideo(ctx context.Context, id db.UUID) (*port.GetVideoOutput, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &port.GetVideoOutput{Video: *v}
	if v.ProcessedKey != nil && *v.ProcessedKey != "" {
		url, err := s.processedStrg.GeneratePresignedDownloadURL(ctx, *v.ProcessedKey, s.downloadTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to presign processed rendition for video #%s: %w", id, err)
		}
		out.ProcessedURL = url
	}
	if v.ThumbKey != nil && *v.ThumbKey != "" {
		url, err := s.processedStrg.GeneratePresignedDownloadURL(ctx, *v.ThumbKey, s.downloadTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to presign thumbnail for video #%s: %w", id, err)
		}
		out.ThumbURL = url
	}
	return out, nil
}
