package mock

import (
	"context"
	"time"

	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/model"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

// VideoRepo is a configurable in-test double for port.VideoRepository.
type VideoRepo struct {
	CreateErr         error
	Created           *model.Video
	Video             *model.Video
	GetErr            error
	ListOut           []model.Video
	ListErr           error
	PublicOut        []model.Video
	PublicErr        error
	MarkProcessedErr error
	MarkFailedErr    error
	DeleteErr        error
	RankingOut       []port.RankingRow
	RankingErr       error

	MarkProcessedID  db.UUID
	MarkProcessedKey string
	MarkThumbKey     string
	MarkFailedID     db.UUID
	MarkFailedReason string
	DeletedID        db.UUID
	RankingCity      string
}

var _ port.VideoRepository = (*VideoRepo)(nil)

func (m *VideoRepo) Create(ctx context.Context, video *model.Video) error {
	m.Created = video
	return m.CreateErr
}

func (m *VideoRepo) GetByID(ctx context.Context, id db.UUID) (*model.Video, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Video, nil
}

func (m *VideoRepo) List(ctx context.Context, filter port.VideoListFilter) ([]model.Video, error) {
	return m.ListOut, m.ListErr
}

func (m *VideoRepo) ListPublic(ctx context.Context, limit, offset int) ([]model.Video, error) {
	return m.PublicOut, m.PublicErr
}

func (m *VideoRepo) MarkProcessed(ctx context.Context, id db.UUID, processedKey, thumbKey string) error {
	m.MarkProcessedID = id
	m.MarkProcessedKey = processedKey
	m.MarkThumbKey = thumbKey
	return m.MarkProcessedErr
}

func (m *VideoRepo) MarkFailed(ctx context.Context, id db.UUID, reason string) error {
	m.MarkFailedID = id
	m.MarkFailedReason = reason
	return m.MarkFailedErr
}

func (m *VideoRepo) DeleteCascade(ctx context.Context, id db.UUID) error {
	m.DeletedID = id
	return m.DeleteErr
}

func (m *VideoRepo) RankingRows(ctx context.Context, city string) ([]port.RankingRow, error) {
	m.RankingCity = city
	return m.RankingOut, m.RankingErr
}

// VoteRepo is a configurable in-test double for port.VoteRepository.
type VoteRepo struct {
	CastCount int
	CastErr   error
	CastErrs  []error
	RemoveOut int
	RemoveErr error
	ListOut   []db.UUID
	ListErr   error
	CastCalls int
	LastVoter db.UUID
	LastVideo db.UUID
	LastCap   int
}

var _ port.VoteRepository = (*VoteRepo)(nil)

func (m *VoteRepo) CastVote(ctx context.Context, voterID, videoID db.UUID, cap int) (int, error) {
	m.CastCalls++
	m.LastVoter, m.LastVideo, m.LastCap = voterID, videoID, cap
	if len(m.CastErrs) > 0 {
		err := m.CastErrs[0]
		m.CastErrs = m.CastErrs[1:]
		if err != nil {
			return 0, err
		}
		return m.CastCount, nil
	}
	if m.CastErr != nil {
		return 0, m.CastErr
	}
	return m.CastCount, nil
}

func (m *VoteRepo) RemoveVote(ctx context.Context, voterID, videoID db.UUID) (int, error) {
	m.LastVoter, m.LastVideo = voterID, videoID
	if m.RemoveErr != nil {
		return 0, m.RemoveErr
	}
	return m.RemoveOut, nil
}

func (m *VoteRepo) ListByVoter(ctx context.Context, voterID db.UUID) ([]db.UUID, error) {
	m.LastVoter = voterID
	return m.ListOut, m.ListErr
}

// JobRepo is a configurable in-test double for port.JobRepository.
type JobRepo struct {
	CreateErr    error
	CreatedJob   *model.ProcessingJob
	Job          *model.ProcessingJob
	GetErr       error
	RunningErr   error
	SucceededErr error
	FailedErr    error
	PrunedCount  int64
	PruneErr     error

	SucceededID  db.UUID
	SucceededKey string
	FailedID     db.UUID
	FailedReason string
	PruneBefore  time.Time
}

var _ port.JobRepository = (*JobRepo)(nil)

func (m *JobRepo) CreateForUpload(ctx context.Context, job *model.ProcessingJob) error {
	m.CreatedJob = job
	return m.CreateErr
}

func (m *JobRepo) GetByID(ctx context.Context, id db.UUID) (*model.ProcessingJob, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Job, nil
}

func (m *JobRepo) MarkRunning(ctx context.Context, id db.UUID) error { return m.RunningErr }

func (m *JobRepo) MarkSucceeded(ctx context.Context, id db.UUID, resultKey string) error {
	m.SucceededID = id
	m.SucceededKey = resultKey
	return m.SucceededErr
}

func (m *JobRepo) MarkFailed(ctx context.Context, id db.UUID, reason string) error {
	m.FailedID = id
	m.FailedReason = reason
	return m.FailedErr
}

func (m *JobRepo) DeleteTerminalBefore(ctx context.Context, before time.Time) (int64, error) {
	m.PruneBefore = before
	return m.PrunedCount, m.PruneErr
}
