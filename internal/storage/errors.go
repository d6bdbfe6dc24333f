package storage

import (
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/talenthub/videorank-ms-go/internal/domain"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return domain.ErrObjectNotFound
	case "NoSuchBucket":
		return domain.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return domain.ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}
}
