package mock

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/talenthub/videorank-ms-go/internal/db"
	"github.com/talenthub/videorank-ms-go/internal/port"
)

// Cache is a configurable in-test double for port.Cache.
type Cache struct {
	Views         map[string][]byte
	Etags         map[string]string
	GetErr        error
	InvalidateErr error

	SetKeys         []string
	InvalidateCalls int
}

var _ port.Cache = (*Cache)(nil)

func (m *Cache) GetView(ctx context.Context, key string) ([]byte, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Views[key], nil
}

func (m *Cache) GetEtagView(ctx context.Context, key string) (string, error) {
	if m.GetErr != nil {
		return "", m.GetErr
	}
	return m.Etags[key], nil
}

func (m *Cache) SetView(ctx context.Context, key string, data []byte, validUntil time.Time) {
	if m.Views == nil {
		m.Views = map[string][]byte{}
	}
	m.Views[key] = data
	m.SetKeys = append(m.SetKeys, key)
}

func (m *Cache) SetEtagView(ctx context.Context, key string, etag string, validUntil time.Time) {
	if m.Etags == nil {
		m.Etags = map[string]string{}
	}
	m.Etags[key] = etag
}

func (m *Cache) InvalidateViews(ctx context.Context) error {
	m.InvalidateCalls++
	return m.InvalidateErr
}

// Storage is a configurable in-test double for port.Storage.
type Storage struct {
	DownloadURL string
	DownloadErr error
	UploadURL   string
	UploadErr   error
	Exists      bool
	ExistsErr   error
	Info        port.FileInfo
	StatErr     error
	RemoveErr   error
	FileContent []byte
	GetErr      error
	SaveErr     error
	CopyErr     error

	RemovedKeys  []string
	SavedKey     string
	SavedSize    int64
	PresignedKey string
}

var _ port.Storage = (*Storage)(nil)

func (m *Storage) GeneratePresignedDownloadURL(ctx context.Context, fileKey string, expiry time.Duration) (string, error) {
	m.PresignedKey = fileKey
	return m.DownloadURL, m.DownloadErr
}

func (m *Storage) GeneratePresignedUploadURL(ctx context.Context, fileKey string, expiry time.Duration) (string, error) {
	m.PresignedKey = fileKey
	return m.UploadURL, m.UploadErr
}

func (m *Storage) FileExists(ctx context.Context, fileKey string) (bool, error) {
	return m.Exists, m.ExistsErr
}

func (m *Storage) StatFile(ctx context.Context, fileKey string) (port.FileInfo, error) {
	return m.Info, m.StatErr
}

func (m *Storage) RemoveFile(ctx context.Context, fileKey string) error {
	m.RemovedKeys = append(m.RemovedKeys, fileKey)
	return m.RemoveErr
}

func (m *Storage) GetFile(ctx context.Context, fileKey string) (io.ReadSeekCloser, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return nopReadSeekCloser{bytes.NewReader(m.FileContent)}, nil
}

func (m *Storage) SaveFile(ctx context.Context, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	m.SavedKey = fileKey
	m.SavedSize = fileSize
	return m.SaveErr
}

func (m *Storage) CopyFile(ctx context.Context, srcKey, destKey string) error {
	return m.CopyErr
}

type nopReadSeekCloser struct{ *bytes.Reader }

func (nopReadSeekCloser) Close() error { return nil }

// Dispatcher is a configurable in-test double for port.TaskDispatcher.
type Dispatcher struct {
	Err       error
	Calls     int
	JobID     db.UUID
	VideoID   db.UUID
	SourceRef string
}

var _ port.TaskDispatcher = (*Dispatcher)(nil)

func (m *Dispatcher) EnqueueProcessVideo(ctx context.Context, jobID, videoID db.UUID, sourceRef string) error {
	m.Calls++
	m.JobID, m.VideoID, m.SourceRef = jobID, videoID, sourceRef
	return m.Err
}

// Transcoder is a configurable in-test double for port.Transcoder.
type Transcoder struct {
	Result port.TranscodeResult
	Err    error

	VideoID   db.UUID
	SourceRef string
}

var _ port.Transcoder = (*Transcoder)(nil)

func (m *Transcoder) Process(ctx context.Context, videoID db.UUID, sourceRef string) (port.TranscodeResult, error) {
	m.VideoID, m.SourceRef = videoID, sourceRef
	return m.Result, m.Err
}
