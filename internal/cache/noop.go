package cache

import (
	"context"
	"time"

	"github.com/talenthub/videorank-ms-go/internal/port"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetView(ctx context.Context, key string) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) GetEtagView(ctx context.Context, key string) (string, error) {
	return "", nil
}

func (n *NoopCache) SetView(ctx context.Context, key string, data []byte, validUntil time.Time) {}

func (n *NoopCache) SetEtagView(ctx context.Context, key string, etag string, validUntil time.Time) {
}

func (n *NoopCache) InvalidateViews(ctx context.Context) error { return nil }
