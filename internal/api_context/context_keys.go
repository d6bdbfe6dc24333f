package api_context

import (
	"context"

	"github.com/talenthub/videorank-ms-go/internal/db"
)

type ctxKey string

const (
	VideoIDKey    ctxKey = "videoID"
	JobIDKey      ctxKey = "jobID"
	AuthUserIDKey ctxKey = "authUserID"
	AuthNameKey   ctxKey = "authName"
	AuthCityKey   ctxKey = "authCity"
	AuthRolesKey  ctxKey = "authRoles"
)

func VideoIDFromContext(ctx context.Context) (db.UUID, bool) {
	id, ok := ctx.Value(VideoIDKey).(db.UUID)
	return id, ok
}

func JobIDFromContext(ctx context.Context) (db.UUID, bool) {
	id, ok := ctx.Value(JobIDKey).(db.UUID)
	return id, ok
}

func AuthUserIDFromContext(ctx context.Context) (db.UUID, bool) {
	id, ok := ctx.Value(AuthUserIDKey).(db.UUID)
	return id, ok
}

func AuthNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(AuthNameKey).(string)
	return name, ok
}

func AuthCityFromContext(ctx context.Context) (string, bool) {
	city, ok := ctx.Value(AuthCityKey).(string)
	return city, ok
}

func AuthRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(AuthRolesKey).([]string)
	return roles, ok
}

// IsAdmin reports whether the verified identity carries the admin role.
func IsAdmin(ctx context.Context) bool {
	roles, ok := AuthRolesFromContext(ctx)
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == "admin" {
			return true
		}
	}
	return false
}
