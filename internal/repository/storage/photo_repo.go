package storage

import (
	"context"
	"io"
	"time"
)

// PhotoRepository stores vehicle photo objects. Objects are private; clients
// read them through presigned URLs.
type PhotoRepository interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}
