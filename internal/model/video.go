package model

import (
	"time"

	"github.com/talenthub/videorank-ms-go/internal/db"
)

const (
	VideoStatusUploaded   = "uploaded"
	VideoStatusProcessing = "processing"
	VideoStatusProcessed  = "processed"
	VideoStatusFailed     = "failed"
)

type Video struct {
	ID             db.UUID   `json:"id"`
	OwnerID        db.UUID   `json:"owner_id"`
	OwnerName      string    `json:"owner_name"`
	City           string    `json:"city"`
	Title          string    `json:"title"`
	Status         string    `json:"status"`
	SourceRef      string    `json:"source_ref"`
	// object keys in the processed bucket; download URLs are presigned at read time
	ProcessedKey *string `json:"-"`
	ThumbKey     *string `json:"-"`
	FailureMessage *string   `json:"failure_message,omitempty"`
	VoteCount      int       `json:"vote_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Votable reports whether the video is eligible for public listing and voting.
func (v *Video) Votable() bool {
	return v.Status == VideoStatusProcessed
}
