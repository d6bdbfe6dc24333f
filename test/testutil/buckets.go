package testutil

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/talenthub/videorank-ms-go/internal/port"
	"github.com/talenthub/videorank-ms-go/internal/storage"
)

const (
	UploadsBucket   = "uploads"
	ProcessedBucket = "processed"
)

type TestBuckets struct {
	Staging   port.Storage
	Processed port.Storage
	Cleanup   func() error
}

// SetupTestBuckets (re)creates the uploads and processed buckets and hands
// back bucket-scoped storages. The raw client is used for teardown since the
// bucket-scoped API has no bucket-removal operations.
func SetupTestBuckets(strg *storage.Strg, client *minio.Client) (*TestBuckets, error) {
	buckets := []string{UploadsBucket, ProcessedBucket}
	ctx := context.Background()

	for _, b := range buckets {
		// drop leftovers from an earlier run, ignoring not-found errors
		for obj := range client.ListObjects(ctx, b, minio.ListObjectsOptions{Recursive: true}) {
			if obj.Err != nil {
				continue
			}
			_ = client.RemoveObject(ctx, b, obj.Key, minio.RemoveObjectOptions{})
		}
		_ = client.RemoveBucket(ctx, b)
	}

	staging, err := strg.WithBucket(UploadsBucket)
	if err != nil {
		return nil, fmt.Errorf("could not create bucket %q: %w", UploadsBucket, err)
	}
	processed, err := strg.WithBucket(ProcessedBucket)
	if err != nil {
		return nil, fmt.Errorf("could not create bucket %q: %w", ProcessedBucket, err)
	}

	cleanup := func() error {
		for _, b := range buckets {
			for obj := range client.ListObjects(ctx, b, minio.ListObjectsOptions{Recursive: true}) {
				if obj.Err != nil {
					continue
				}
				_ = client.RemoveObject(ctx, b, obj.Key, minio.RemoveObjectOptions{})
			}
			if err := client.RemoveBucket(ctx, b); err != nil {
				return fmt.Errorf("could not remove bucket %q: %w", b, err)
			}
		}
		return nil
	}

	return &TestBuckets{
		Staging:   staging,
		Processed: processed,
		Cleanup:   cleanup,
	}, nil
}
