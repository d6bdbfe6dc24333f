package model

import (
	"time"

	"github.com/talenthub/videorank-ms-go/internal/db"
)

// Vote is one active vote by a voter on a video. The (VoterID, VideoID) pair
// is the primary key; there is never more than one active row per pair.
type Vote struct {
	VoterID   db.UUID   `json:"voter_id"`
	VideoID   db.UUID   `json:"video_id"`
	CreatedAt time.Time `json:"created_at"`
}
