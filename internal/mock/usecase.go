package mock

import (
	"context"

	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

// VideoCreator is a configurable in-test double for port.VideoCreator.
type VideoCreator struct {
	Out    *port.CreateVideoOutput
	Err    error
	Called bool
	In     port.CreateVideoInput
}

var _ port.VideoCreator = (*VideoCreator)(nil)

func (m *VideoCreator) CreateVideo(ctx context.Context, in port.CreateVideoInput) (*port.CreateVideoOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// VideoGetter is a configurable in-test double for port.VideoGetter.
type VideoGetter struct {
	Out    *port.GetVideoOutput
	Err    error
	Called bool
	ID     db.UUID
}

var _ port.VideoGetter = (*VideoGetter)(nil)

func (m *VideoGetter) GetVideo(ctx context.Context, id db.UUID) (*port.GetVideoOutput, error) {
	m.Called = true
	m.ID = id
	return m.Out, m.Err
}

// PublicLister is a configurable in-test double for port.PublicVideoLister.
type PublicLister struct {
	Out    *port.PublicVideosOutput
	Err    error
	Called bool
	Limit  int
	Offset int
}

var _ port.PublicVideoLister = (*PublicLister)(nil)

func (m *PublicLister) ListPublicVideos(ctx context.Context, limit, offset int) (*port.PublicVideosOutput, error) {
	m.Called = true
	m.Limit, m.Offset = limit, offset
	return m.Out, m.Err
}

// VideoDeleter is a configurable in-test double for port.VideoDeleter.
type VideoDeleter struct {
	Err     error
	Called  bool
	ID      db.UUID
	AsAdmin bool
}

var _ port.VideoDeleter = (*VideoDeleter)(nil)

func (m *VideoDeleter) DeleteVideo(ctx context.Context, id, requesterID db.UUID, isAdmin bool) error {
	m.Called = true
	m.ID = id
	m.AsAdmin = isAdmin
	return m.Err
}

// Voter is a configurable in-test double for port.Voter.
type Voter struct {
	VoteCount   int
	VoteErr     error
	UnvoteCount int
	UnvoteErr   error

	VotedVideo   db.UUID
	UnvotedVideo db.UUID
}

var _ port.Voter = (*Voter)(nil)

func (m *Voter) Vote(ctx context.Context, voterID, videoID db.UUID) (int, error) {
	m.VotedVideo = videoID
	return m.VoteCount, m.VoteErr
}

func (m *Voter) Unvote(ctx context.Context, voterID, videoID db.UUID) (int, error) {
	m.UnvotedVideo = videoID
	return m.UnvoteCount, m.UnvoteErr
}

// VoteLister is a configurable in-test double for port.VoteLister.
type VoteLister struct {
	Out     *port.MyVotesOutput
	Err     error
	VoterID db.UUID
}

var _ port.VoteLister = (*VoteLister)(nil)

func (m *VoteLister) MyVotes(ctx context.Context, voterID db.UUID) (*port.MyVotesOutput, error) {
	m.VoterID = voterID
	return m.Out, m.Err
}

// RankingComputer is a configurable in-test double for port.RankingComputer.
type RankingComputer struct {
	Out    *port.RankingOutput
	Err    error
	Called bool
	City   string
}

var _ port.RankingComputer = (*RankingComputer)(nil)

func (m *RankingComputer) ComputeRanking(ctx context.Context, city string) (*port.RankingOutput, error) {
	m.Called = true
	m.City = city
	return m.Out, m.Err
}

// JobSubmitter is a configurable in-test double for port.JobSubmitter.
type JobSubmitter struct {
	Out         db.UUID
	Err         error
	VideoID     db.UUID
	RequesterID db.UUID
	AsAdmin     bool
}

var _ port.JobSubmitter = (*JobSubmitter)(nil)

func (m *JobSubmitter) Submit(ctx context.Context, videoID, requesterID db.UUID, isAdmin bool) (db.UUID, error) {
	m.VideoID = videoID
	m.RequesterID = requesterID
	m.AsAdmin = isAdmin
	return m.Out, m.Err
}

// JobPoller is a configurable in-test double for port.JobPoller.
type JobPoller struct {
	Out   *port.JobStatusOutput
	Err   error
	JobID db.UUID
}

var _ port.JobPoller = (*JobPoller)(nil)

func (m *JobPoller) Poll(ctx context.Context, jobID db.UUID) (*port.JobStatusOutput, error) {
	m.JobID = jobID
	return m.Out, m.Err
}

// JobStarter is a configurable in-test double for port.JobStarter.
type JobStarter struct {
	Err   error
	JobID db.UUID
}

var _ port.JobStarter = (*JobStarter)(nil)

func (m *JobStarter) Start(ctx context.Context, jobID db.UUID) error {
	m.JobID = jobID
	return m.Err
}

// JobCompleter is a configurable in-test double for port.JobCompleter.
type JobCompleter struct {
	Err error
	In  port.JobCompletionInput
}

var _ port.JobCompleter = (*JobCompleter)(nil)

func (m *JobCompleter) Complete(ctx context.Context, in port.JobCompletionInput) error {
	m.In = in
	return m.Err
}

// Renderer is a configurable in-test double for port.HTTPRenderer.
type Renderer struct {
	Raw  []byte
	Etag string
	Err  error

	RankingCity string
	Limit       int
	Offset      int
}

var _ port.HTTPRenderer = (*Renderer)(nil)

func (m *Renderer) RenderRanking(ctx context.Context, svc port.RankingComputer, city string) ([]byte, string, error) {
	m.RankingCity = city
	return m.Raw, m.Etag, m.Err
}

func (m *Renderer) RenderPublicVideos(ctx context.Context, svc port.PublicVideoLister, limit, offset int) ([]byte, string, error) {
	m.Limit, m.Offset = limit, offset
	return m.Raw, m.Etag, m.Err
}
