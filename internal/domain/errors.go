package domain

import "errors"

var (
	ErrVideoNotFound   = errors.New("video not found")
	ErrJobNotFound     = errors.New("processing job not found")
	ErrVoteNotFound    = errors.New("vote not found")
	ErrInvalidState    = errors.New("operation not allowed in current state")
	ErrDuplicateJob    = errors.New("a processing job already exists for this video")
	ErrDuplicateVote   = errors.New("already voted for this video")
	ErrVoteCapExceeded = errors.New("vote cap reached")
	ErrForbidden       = errors.New("requester does not own this resource")
	ErrValidation      = errors.New("invalid input")
)

// Storage-facing sentinels, mapped from the object store's error responses.
var (
	ErrObjectNotFound = errors.New("object not found")
	ErrBucketNotFound = errors.New("bucket not found")
	ErrUnauthorized   = errors.New("unauthorized storage access")
	ErrInternal       = errors.New("internal error")
)
