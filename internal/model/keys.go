package model

import (
	"fmt"

	"github.com/talenthub/videorank-ms-go/internal/db"
)

// Object key conventions shared by the upload flow, the transcoder, and the
// deletion cleanup. Staged sources live in the uploads bucket, outputs in the
// processed bucket.

func StagingObjectKey(id db.UUID, filename string) string {
	return fmt.Sprintf("%s/%s", id, filename)
}

func ProcessedObjectKey(id db.UUID) string {
	return fmt.Sprintf("%s/processed.mp4", id)
}

func ThumbObjectKey(id db.UUID) string {
	return fmt.Sprintf("%s/thumb.jpg", id)
}
