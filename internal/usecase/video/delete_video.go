package video

import (
	"context"
	"log"

	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/domain"
	"github.com/talenthub/videorank-ms-go/internal/model"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

type deleterSrv struct {
	repo          port.VideoRepository
	cache         port.Cache
	stagingStrg   port.Storage
	processedStrg port.Storage
}

// compile-time check: *deleterSrv must satisfy port.VideoDeleter
var _ port.VideoDeleter = (*deleterSrv)(nil)

func NewVideoDeleter(repo port.VideoRepository, cache port.Cache, stagingStrg, processedStrg port.Storage) port.VideoDeleter {
	return &deleterSrv{repo: repo, cache: cache, stagingStrg: stagingStrg, processedStrg: processedStrg}
}

// DeleteVideo removes the video and everything hanging off it: vote rows go
// in the same transaction as the video row, any live job is failed so a late
// worker callback no-ops, stored objects are cleaned up best-effort, and the
// cached views are invalidated.
func (s *deleterSrv) DeleteVideo(ctx context.Context, id, requesterID db.UUID, isAdmin bool) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v.OwnerID != requesterID && !isAdmin {
		return domain.ErrForbidden
	}

	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return err
	}

	if err := s.stagingStrg.RemoveFile(ctx, v.SourceRef); err != nil {
		log.Printf("failed to remove staged file %q for deleted video #%s: %v", v.SourceRef, id, err)
	}
	if v.Status == model.VideoStatusProcessed {
		for _, key := range []string{model.ProcessedObjectKey(id), model.ThumbObjectKey(id)} {
			if err := s.processedStrg.RemoveFile(ctx, key); err != nil {
				log.Printf("failed to remove processed file %q for deleted video #%s: %v", key, id, err)
			}
		}
	}

	if err := s.cache.InvalidateViews(ctx); err != nil {
		log.Printf("failed to invalidate cached views after deleting video #%s: %v", id, err)
	}
	return nil
}
