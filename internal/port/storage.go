package port

import (
	"context"
	"io"
)

// Storage defines object storage operations. Implementations must be safe
// for concurrent use by multiple worker goroutines.
type Storage interface {
	InitBucket(bucket string) error
	// Upload stores the stream under bucket/fileKey and returns the public URL.
	Upload(ctx context.Context, bucket, fileKey string, reader io.Reader, size int64, contentType string) (string, error)
	// DownloadFromURL fetches the object a previous Upload produced into destPath.
	DownloadFromURL(ctx context.Context, rawURL, destPath string) error
	// Delete removes the object behind a URL previously returned by Upload.
	Delete(ctx context.Context, rawURL string) error
}
