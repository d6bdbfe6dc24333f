package transcoder

import (
	"context"
	"fmt"
	"log"

	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/model"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

// StorageTranscoder produces the public rendition of an uploaded video. The
// heavy encoding runs on the bucket pipeline outside this service; here the
// staging object is promoted into the processed bucket. Only object keys come
// back: download URLs are presigned by the read paths so they never go stale.
type StorageTranscoder struct {
	stagingStrg   port.Storage
	processedStrg port.Storage
}

// compile-time check: *StorageTranscoder must satisfy port.Transcoder
var _ port.Transcoder = (*StorageTranscoder)(nil)

func NewStorageTranscoder(stagingStrg, processedStrg port.Storage) *StorageTranscoder {
	return &StorageTranscoder{stagingStrg: stagingStrg, processedStrg: processedStrg}
}

func (t *StorageTranscoder) Process(ctx context.Context, videoID db.UUID, sourceRef string) (port.TranscodeResult, error) {
	info, err := t.stagingStrg.StatFile(ctx, sourceRef)
	if err != nil {
		return port.TranscodeResult{}, fmt.Errorf("source object %q unavailable: %w", sourceRef, err)
	}

	reader, err := t.stagingStrg.GetFile(ctx, sourceRef)
	if err != nil {
		return port.TranscodeResult{}, fmt.Errorf("failed to read source object %q: %w", sourceRef, err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			log.Printf("failed to close reader for %q: %v", sourceRef, err)
		}
	}()

	processedKey := model.ProcessedObjectKey(videoID)
	opts := map[string]string{"Content-Type": "video/mp4"}
	if err := t.processedStrg.SaveFile(ctx, processedKey, reader, info.SizeBytes, opts); err != nil {
		return port.TranscodeResult{}, fmt.Errorf("failed to save processed rendition %q: %w", processedKey, err)
	}

	result := port.TranscodeResult{ProcessedKey: processedKey}

	// the thumbnail is extracted by the bucket pipeline; expose it when ready
	thumbKey := model.ThumbObjectKey(videoID)
	exists, err := t.processedStrg.FileExists(ctx, thumbKey)
	if err != nil {
		log.Printf("failed to check thumbnail %q: %v", thumbKey, err)
		return result, nil
	}
	if exists {
		result.ThumbKey = thumbKey
	}

	return result, nil
}
