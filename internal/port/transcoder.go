package port

import (
	"context"

	"github.com/talenthub/videorank-ms-go/internal/db"
)

// TranscodeResult carries the object keys of a finished transcode. Keys are
// persisted instead of URLs; read paths presign downloads on demand so links
// never outlive their signature.
type TranscodeResult struct {
	ProcessedKey string
	ThumbKey     string
}

// Transcoder is the storage/transcode collaborator. It turns the staged
// source object of a video into playable processed objects and returns their
// keys in the processed bucket. The actual encoding pipeline lives behind
// this interface.
type Transcoder interface {
	Process(ctx context.Context, videoID db.UUID, sourceRef string) (TranscodeResult, error)
}
