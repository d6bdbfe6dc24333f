package video

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/domain"
	"github.com/talenthub/videorank-ms-go/internal/model"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

type creatorSrv struct {
	repo        port.VideoRepository
	stagingStrg port.Storage
	genUUID     UUIDGen
	maxTitleLen int
	uploadTTL   time.Duration
}

type UUIDGen func() db.UUID

// compile-time check: *creatorSrv must satisfy port.VideoCreator
var _ port.VideoCreator = (*creatorSrv)(nil)

func NewVideoCreator(repo port.VideoRepository, stagingStrg port.Storage, genUUID UUIDGen, maxTitleLen int, uploadTTL time.Duration) port.VideoCreator {
	return &creatorSrv{repo: repo, stagingStrg: stagingStrg, genUUID: genUUID, maxTitleLen: maxTitleLen, uploadTTL: uploadTTL}
}

// CreateVideo registers a new video in uploaded status and returns a
// presigned URL the owner PUTs the raw file to. The title defaults to the
// source filename when absent.
func (s *creatorSrv) CreateVideo(ctx context.Context, in port.CreateVideoInput) (*port.CreateVideoOutput, error) {
	sourceRef := strings.TrimSpace(in.SourceRef)
	if sourceRef == "" {
		return nil, fmt.Errorf("%w: source_ref is required", domain.ErrValidation)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = sourceRef
	}
	if len(title) > s.maxTitleLen {
		return nil, fmt.Errorf("%w: title exceeds %d characters", domain.ErrValidation, s.maxTitleLen)
	}

	id := s.genUUID()
	v := model.Video{
		ID:        id,
		OwnerID:   in.OwnerID,
		OwnerName: in.OwnerName,
		City:      in.City,
		Title:     title,
		Status:    model.VideoStatusUploaded,
		SourceRef: model.StagingObjectKey(id, sourceRef),
	}

	if err := s.repo.Create(ctx, &v); err != nil {
		return nil, fmt.Errorf("failed creating video: %w", err)
	}

	uploadURL, err := s.stagingStrg.GeneratePresignedUploadURL(ctx, v.SourceRef, s.uploadTTL)
	if err != nil {
		return nil, fmt.Errorf("error generating presigned upload URL: %w", err)
	}

	return &port.CreateVideoOutput{Video: v, UploadURL: uploadURL}, nil
}
