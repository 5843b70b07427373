package ports

import (
	"context"
	"io"
	"time"
)

// ObjectStorage abstracts the blob store. PresignGet converts an internal
// object key into a time-limited URL; raw keys must never be returned to
// clients directly.
type ObjectStorage interface {
	PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error)
}
