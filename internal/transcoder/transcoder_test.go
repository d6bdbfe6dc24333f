package transcoder

import (
	"context"
	"errors"
	"testing"

	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/domain"
	"github.com/talenthub/videorank-ms-go/internal/mock"
	"github.com/talenthub/videorank-ms-go/internal/model"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

func uuidFrom(t *testing.T, s string) db.UUID {
	t.Helper()
	var id db.UUID
	if err := id.UnmarshalText([]byte(s)); err != nil {
		t.Fatalf("failed to parse UUID %q: %v", s, err)
	}
	return id
}

func TestProcess_Success(t *testing.T) {
	videoID := uuidFrom(t, "11111111-2222-3333-4444-555555555555")
	staging := &mock.Storage{
		Info:        port.FileInfo{SizeBytes: 4096, ContentType: "video/mp4"},
		FileContent: []byte("raw video bytes"),
	}
	processed := &mock.Storage{Exists: false}
	tr := NewStorageTranscoder(staging, processed)

	out, err := tr.Process(context.Background(), videoID, videoID.String()+"/clip.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if processed.SavedKey != model.ProcessedObjectKey(videoID) {
		t.Errorf("saved key = %q; want %q", processed.SavedKey, model.ProcessedObjectKey(videoID))
	}
	if processed.SavedSize != 4096 {
		t.Errorf("saved size = %d; want 4096", processed.SavedSize)
	}
	if out.ProcessedKey != model.ProcessedObjectKey(videoID) {
		t.Errorf("processed key = %q; want %q", out.ProcessedKey, model.ProcessedObjectKey(videoID))
	}
	if out.ThumbKey != "" {
		t.Errorf("expected no thumb key without a thumbnail object, got %q", out.ThumbKey)
	}
}

func TestProcess_ExposesThumbnailWhenPresent(t *testing.T) {
	videoID := uuidFrom(t, "11111111-2222-3333-4444-555555555555")
	staging := &mock.Storage{Info: port.FileInfo{SizeBytes: 1}}
	processed := &mock.Storage{Exists: true}
	tr := NewStorageTranscoder(staging, processed)

	out, err := tr.Process(context.Background(), videoID, "src")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ThumbKey != model.ThumbObjectKey(videoID) {
		t.Errorf("thumb key = %q; want %q", out.ThumbKey, model.ThumbObjectKey(videoID))
	}
}

func TestProcess_MissingSource(t *testing.T) {
	staging := &mock.Storage{StatErr: domain.ErrObjectNotFound}
	tr := NewStorageTranscoder(staging, &mock.Storage{})

	_, err := tr.Process(context.Background(), uuidFrom(t, "11111111-2222-3333-4444-555555555555"), "gone.mp4")
	if !errors.Is(err, domain.ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestProcess_SaveError(t *testing.T) {
	staging := &mock.Storage{Info: port.FileInfo{SizeBytes: 1}}
	processed := &mock.Storage{SaveErr: errors.New("bucket full")}
	tr := NewStorageTranscoder(staging, processed)

	_, err := tr.Process(context.Background(), uuidFrom(t, "11111111-2222-3333-4444-555555555555"), "src")
	if err == nil {
		t.Fatal("expected an error, got none")
	}
}
