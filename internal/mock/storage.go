package mock

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/streamhive/videos-ms-go/internal/port"
)

// Storage implements the storage interface for tests. Uploads return
// deterministic URLs of the form https://cdn.test/<bucket>/<key>.
type Storage struct {
	// stored values
	DownloadContent []byte

	// captured inputs
	UploadedKeys    []string
	UploadedBuckets []string
	DownloadedURL   string
	DeletedURLs     []string

	// errors
	InitBucketErr error
	UploadErr     error
	// UploadErrOnKey fails only the upload whose key contains this substring.
	UploadErrOnKey string
	DownloadErr    error
	DeleteErr      error

	// call flags
	InitBucketCalled bool
	UploadCalled     bool
	DownloadCalled   bool
	DeleteCalled     bool
}

var _ port.Storage = (*Storage)(nil)

func (m *Storage) InitBucket(bucket string) error {
	m.InitBucketCalled = true
	return m.InitBucketErr
}

func (m *Storage) Upload(ctx context.Context, bucket, fileKey string, reader io.Reader, size int64, contentType string) (string, error) {
	m.UploadCalled = true
	m.UploadedBuckets = append(m.UploadedBuckets, bucket)
	m.UploadedKeys = append(m.UploadedKeys, fileKey)
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	if m.UploadErrOnKey != "" && strings.Contains(fileKey, m.UploadErrOnKey) {
		return "", fmt.Errorf("upload of %q failed", fileKey)
	}
	return "https://cdn.test/" + bucket + "/" + fileKey, nil
}

func (m *Storage) DownloadFromURL(ctx context.Context, rawURL, destPath string) error {
	m.DownloadCalled = true
	m.DownloadedURL = rawURL
	if m.DownloadErr != nil {
		return m.DownloadErr
	}
	return os.WriteFile(destPath, m.DownloadContent, 0o644)
}

func (m *Storage) Delete(ctx context.Context, rawURL string) error {
	m.DeleteCalled = true
	m.DeletedURLs = append(m.DeletedURLs, rawURL)
	return m.DeleteErr
}
