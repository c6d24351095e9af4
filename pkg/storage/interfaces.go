package storage

import (
	"context"
	"io"
)

// StorageService stores uploaded media and addresses it by public URL.
type StorageService interface {
	// ObjectName derives the stored name for an uploaded file name.
	ObjectName(filename string) string
	// Upload writes the object and returns its public URL.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	// Delete removes the object behind a public URL. Unknown or foreign URLs are ignored.
	Delete(ctx context.Context, fileURL string) error
}
