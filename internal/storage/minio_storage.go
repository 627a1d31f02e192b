package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/streamhive/videos-ms-go/internal/port"
)

// MinioStorage stores pipeline artifacts in MinIO/S3. Buckets are passed per
// call because one worker writes to several (uploads, videos, thumbnails).
type MinioStorage struct {
	client   minioClient
	endpoint string
	useSSL   bool
}

// compile-time check: *MinioStorage must satisfy port.Storage
var _ port.Storage = (*MinioStorage)(nil)

func NewStorage(endpoint, accessKey, secretKey string, useSSL bool) (*MinioStorage, error) {
	log.Println("initialising minio client...")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return &MinioStorage{client: client, endpoint: endpoint, useSSL: useSSL}, nil
}

func (s *MinioStorage) InitBucket(bucket string) error {
	ok, err := s.client.BucketExists(context.Background(), bucket)
	if err != nil {
		return mapMinioErr(err)
	}
	if !ok {
		log.Printf("bucket %q does not exist, creating it...", bucket)
		if err := s.client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return mapMinioErr(err)
		}
	}
	return nil
}

func (s *MinioStorage) Upload(ctx context.Context, bucket, fileKey string, reader io.Reader, size int64, contentType string) (string, error) {
	log.Printf("saving file %q into bucket %q...", fileKey, bucket)

	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := s.client.PutObject(ctx, bucket, fileKey, reader, size, opts); err != nil {
		return "", mapMinioErr(err)
	}
	return s.publicURL(bucket, fileKey), nil
}

func (s *MinioStorage) DownloadFromURL(ctx context.Context, rawURL, destPath string) error {
	bucket, fileKey, err := s.parseObjectURL(rawURL)
	if err != nil {
		return err
	}
	log.Printf("downloading file %q from bucket %q to %q...", fileKey, bucket, destPath)

	if err := s.client.FGetObject(ctx, bucket, fileKey, destPath, minio.GetObjectOptions{}); err != nil {
		return mapMinioErr(err)
	}
	return nil
}

func (s *MinioStorage) Delete(ctx context.Context, rawURL string) error {
	bucket, fileKey, err := s.parseObjectURL(rawURL)
	if err != nil {
		return err
	}
	log.Printf("removing file %q from bucket %q...", fileKey, bucket)

	if err := s.client.RemoveObject(ctx, bucket, fileKey, minio.RemoveObjectOptions{}); err != nil {
		return mapMinioErr(err)
	}
	return nil
}

func (s *MinioStorage) publicURL(bucket, fileKey string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, bucket, fileKey)
}

// parseObjectURL inverts publicURL: the first path segment is the bucket,
// the rest is the object key.
func (s *MinioStorage) parseObjectURL(rawURL string) (bucket, fileKey string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid object URL %q: %w", rawURL, err)
	}
	parts := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("object URL %q has no bucket/key path", rawURL)
	}
	return parts[0], parts[1], nil
}
