// Package storage holds entity images in an S3-compatible bucket. Clients
// upload directly with a presigned PUT; the API only records the resulting
// public URLs.
package storage

import (
	"context"
	"time"
)

// DefaultPresignedURLExpiry is used when a caller passes a non-positive expiry.
const DefaultPresignedURLExpiry = 15 * time.Minute

type FileStorage interface {
	// GeneratePresignedUploadURL signs a PUT for objectKey. The uploader must
	// send the same Content-Type.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	DeleteObject(ctx context.Context, objectKey string) error

	// PublicURL is the address the object is served from once uploaded.
	PublicURL(objectKey string) string

	// ObjectKey reverses PublicURL. It reports false for URLs this storage did not produce.
	ObjectKey(publicURL string) (string, bool)
}
