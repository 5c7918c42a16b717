package storage

import (
	"context"
	"time"
)

// FileStorage keeps generated documents such as agenda exports. Objects are
// addressed by their name inside the configured bucket.
type FileStorage interface {
	UploadFile(ctx context.Context, data []byte, objectName, contentType string) (string, error)

	DeleteFile(ctx context.Context, objectName string) error

	GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}
