package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"time"

	"github.com/talenthub/videorank-ms-go/internal/port"
)

type httpRenderer struct {
	cache   port.Cache
	viewTTL time.Duration
}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a new HTTPRenderer implementation. viewTTL bounds
// how stale a cached ranking or listing is allowed to get before a request
// recomputes it.
func NewHTTPRenderer(cache port.Cache, viewTTL time.Duration) port.HTTPRenderer {
	return &httpRenderer{cache: cache, viewTTL: viewTTL}
}

// RenderRanking serves the current standings either from cache or from the
// wrapped use case. It returns the JSON encoded output and a quoted ETag
// string.
func (r *httpRenderer) RenderRanking(ctx context.Context, svc port.RankingComputer, city string) ([]byte, string, error) {
	key := rankingKey(city)
	return r.render(ctx, key, func() (any, error) {
		return svc.ComputeRanking(ctx, city)
	})
}

// RenderPublicVideos serves one page of the public gallery either from cache
// or from the wrapped use case.
func (r *httpRenderer) RenderPublicVideos(ctx context.Context, svc port.PublicVideoLister, limit, offset int) ([]byte, string, error) {
	key := publicVideosKey(limit, offset)
	return r.render(ctx, key, func() (any, error) {
		return svc.ListPublicVideos(ctx, limit, offset)
	})
}

func (r *httpRenderer) render(ctx context.Context, key string, compute func() (any, error)) ([]byte, string, error) {
	raw, err := r.cache.GetView(ctx, key)
	etag, errEtag := r.cache.GetEtagView(ctx, key)
	if err == nil && errEtag == nil && raw != nil && etag != "" {
		return raw, etag, nil
	}

	out, err := compute()
	if err != nil {
		return nil, "", err
	}

	raw, err = json.Marshal(out)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}

	etag = fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
	validUntil := time.Now().Add(r.viewTTL)
	r.cache.SetView(ctx, key, raw, validUntil)
	r.cache.SetEtagView(ctx, key, etag, validUntil)

	return raw, etag, nil
}

func rankingKey(city string) string {
	return "view:ranking:" + city
}

func publicVideosKey(limit, offset int) string {
	return fmt.Sprintf("view:videos:%d:%d", limit, offset)
}
