package port

import (
	"context"
	"time"
)

// Cache stores rendered read-side views (rankings, public listings) keyed by
// view name. Entries are never authoritative; the vote ledger and video store
// invalidate them after every write that changes what a view would show.
type Cache interface {
	GetView(ctx context.Context, key string) ([]byte, error)
	GetEtagView(ctx context.Context, key string) (string, error)
	SetView(ctx context.Context, key string, data []byte, validUntil time.Time)
	SetEtagView(ctx context.Context, key string, etag string, validUntil time.Time)
	InvalidateViews(ctx context.Context) error
}
