package model

import (
	"time"

	"github.com/talenthub/videorank-ms-go/internal/db"
)

const (
	JobStateQueued    = "queued"
	JobStateRunning   = "running"
	JobStateSucceeded = "succeeded"
	JobStateFailed    = "failed"
)

// ProcessingJob tracks one transcoding run for a video. While the job is live
// it is 1:1 with its video; terminal rows may be pruned once the video has
// settled.
type ProcessingJob struct {
	ID            db.UUID   `json:"id"`
	VideoID       db.UUID   `json:"video_id"`
	State         string    `json:"state"`
	ResultKey     *string   `json:"-"`
	FailureReason *string   `json:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Terminal reports whether the job can no longer change state.
func (j *ProcessingJob) Terminal() bool {
	return j.State == JobStateSucceeded || j.State == JobStateFailed
}
