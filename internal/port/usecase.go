package port

import (
	"context"
	"time"

	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/model"
)

// VideoCreator registers an uploaded video and hands back a presigned URL the
// client PUTs the raw file to.
type VideoCreator interface {
	CreateVideo(ctx context.Context, in CreateVideoInput) (*CreateVideoOutput, error)
}
type CreateVideoInput struct {
	OwnerID   db.UUID
	OwnerName string
	City      string
	Title     string
	SourceRef string
}
type CreateVideoOutput struct {
	Video     model.Video `json:"video"`
	UploadURL string      `json:"upload_url"`
}

// VideoGetter retrieves a single video record with fresh download URLs for
// its processed renditions.
type VideoGetter interface {
	GetVideo(ctx context.Context, id db.UUID) (*GetVideoOutput, error)
}
type GetVideoOutput struct {
	model.Video
	ProcessedURL string `json:"processed_url,omitempty"`
	ThumbURL     string `json:"thumb_url,omitempty"`
}

// VideoLister lists video records, newest first.
type VideoLister interface {
	ListVideos(ctx context.Context, filter VideoListFilter) ([]model.Video, error)
}

// PublicVideoLister lists processed videos for the public gallery.
type PublicVideoLister interface {
	ListPublicVideos(ctx context.Context, limit, offset int) (*PublicVideosOutput, error)
}
type PublicVideoItem struct {
	VideoID      db.UUID   `json:"video_id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	City         string    `json:"city"`
	ProcessedURL string    `json:"processed_url"`
	ThumbURL     string    `json:"thumb_url,omitempty"`
	Votes        int       `json:"votes"`
	CreatedAt    time.Time `json:"created_at"`
}
type PublicVideosOutput struct {
	Items []PublicVideoItem `json:"items"`
}

// VideoDeleter removes a video, its votes, and invalidates any live job.
type VideoDeleter interface {
	DeleteVideo(ctx context.Context, id, requesterID db.UUID, isAdmin bool) error
}

// Voter records and removes capped votes, returning the video's new count.
type Voter interface {
	Vote(ctx context.Context, voterID, videoID db.UUID) (int, error)
	Unvote(ctx context.Context, voterID, videoID db.UUID) (int, error)
}

// VoteLister exposes a voter's active set and remaining budget.
type VoteLister interface {
	MyVotes(ctx context.Context, voterID db.UUID) (*MyVotesOutput, error)
}
type MyVotesOutput struct {
	VideoIDs  []db.UUID `json:"video_ids"`
	Used      int       `json:"used"`
	Remaining int       `json:"remaining"`
}

// RankingComputer derives ordered standings from the current vote state.
type RankingComputer interface {
	ComputeRanking(ctx context.Context, city string) (*RankingOutput, error)
}
type RankingEntry struct {
	Position int     `json:"position"`
	VideoID  db.UUID `json:"video_id"`
	Title    string  `json:"title"`
	Name     string  `json:"name"`
	City     string  `json:"city"`
	Score    int     `json:"score"`
}
type RankingOutput struct {
	Entries []RankingEntry `json:"entries"`
}

// JobSubmitter starts the processing lifecycle for an uploaded video.
// It must be called exactly once per uploaded video, by its owner.
type JobSubmitter interface {
	Submit(ctx context.Context, videoID, requesterID db.UUID, isAdmin bool) (db.UUID, error)
}

// JobPoller is the pollable job-status read.
type JobPoller interface {
	Poll(ctx context.Context, jobID db.UUID) (*JobStatusOutput, error)
}
type JobStatusOutput struct {
	JobID         db.UUID `json:"job_id"`
	State         string  `json:"state"`
	ResultURL     *string `json:"result_url,omitempty"`
	FailureReason *string `json:"failure_reason,omitempty"`
}

// JobStarter flips a queued job to running when the worker picks it up.
type JobStarter interface {
	Start(ctx context.Context, jobID db.UUID) error
}

// JobCompleter handles the transcode collaborator's terminal callback. A
// repeated delivery for an already-settled job is an idempotent no-op.
type JobCompleter interface {
	Complete(ctx context.Context, in JobCompletionInput) error
}
type JobCompletionInput struct {
	JobID        db.UUID
	Succeeded    bool
	ProcessedKey string
	ThumbKey     string
	Reason       string
}

// JobPruner removes settled jobs that have aged past the retention window.
type JobPruner interface {
	PruneJobs(ctx context.Context, retention time.Duration) (int64, error)
}

// HTTPRenderer mediates between HTTP handlers and the read-side use cases.
// It provides caching and returns both the JSON representation of the result
// and an ETag derived from it.
type HTTPRenderer interface {
	RenderRanking(ctx context.Context, svc RankingComputer, city string) ([]byte, string, error)
	RenderPublicVideos(ctx context.Context, svc PublicVideoLister, limit, offset int) ([]byte, string, error)
}
