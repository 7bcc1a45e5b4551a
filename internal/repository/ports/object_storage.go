package ports

import (
	"context"
	"io"
)

// ObjectStorage persists uploaded documents (resumes) and returns their
// public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error)
}
