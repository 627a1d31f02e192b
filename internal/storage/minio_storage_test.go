package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/streamhive/videos-ms-go/internal/usecase/video"
)

type mockMinio struct {
	bucketExistsFn func(ctx context.Context, bucketName string) (bool, error)
	makeBucketFn   func(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	removeObjectFn func(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	putObjectFn    func(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	fGetObjectFn   func(ctx context.Context, bucketName, objectName, filePath string, opts minio.GetObjectOptions) error
}

func (m *mockMinio) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return m.bucketExistsFn(ctx, bucketName)
}
func (m *mockMinio) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return m.makeBucketFn(ctx, bucketName, opts)
}
func (m *mockMinio) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return m.removeObjectFn(ctx, bucketName, objectName, opts)
}
func (m *mockMinio) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return m.putObjectFn(ctx, bucketName, objectName, reader, objectSize, opts)
}
func (m *mockMinio) FGetObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.GetObjectOptions) error {
	return m.fGetObjectFn(ctx, bucketName, objectName, filePath, opts)
}

func makeStorage(mockClient *mockMinio, useSSL bool) *MinioStorage {
	return &MinioStorage{
		client:   mockClient,
		endpoint: "minio.local:9000",
		useSSL:   useSSL,
	}
}

func TestInitBucket(t *testing.T) {
	tests := []struct {
		name           string
		exists         bool
		existsErr      error
		makeErr        error
		wantMakeCalled bool
		wantErr        bool
	}{
		{
			name:           "bucket exists, no create",
			exists:         true,
			wantMakeCalled: false,
		},
		{
			name:           "bucket does not exist, create succeeds",
			exists:         false,
			wantMakeCalled: true,
		},
		{
			name:      "BucketExists error bubbles up",
			existsErr: errors.New("exist fail"),
			wantErr:   true,
		},
		{
			name:           "MakeBucket error bubbles up",
			exists:         false,
			makeErr:        errors.New("make fail"),
			wantMakeCalled: true,
			wantErr:        true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			makeCalled := false

			mock := &mockMinio{
				bucketExistsFn: func(ctx context.Context, bucketName string) (bool, error) {
					return tc.exists, tc.existsErr
				},
				makeBucketFn: func(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
					makeCalled = true
					return tc.makeErr
				},
			}

			err := makeStorage(mock, true).InitBucket("my-bucket")

			if tc.wantErr && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if makeCalled != tc.wantMakeCalled {
				t.Errorf("MakeBucket called = %v; want %v", makeCalled, tc.wantMakeCalled)
			}
		})
	}
}

func TestUpload_ReturnsPublicURL(t *testing.T) {
	var gotBucket, gotKey, gotContentType string
	mock := &mockMinio{
		putObjectFn: func(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
			gotBucket = bucketName
			gotKey = objectName
			gotContentType = opts.ContentType
			return minio.UploadInfo{}, nil
		},
	}

	url, err := makeStorage(mock, false).Upload(context.Background(), "videos", "abc/720p.mp4", strings.NewReader("data"), 4, "video/mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "http://minio.local:9000/videos/abc/720p.mp4" {
		t.Errorf("unexpected URL %q", url)
	}
	if gotBucket != "videos" || gotKey != "abc/720p.mp4" || gotContentType != "video/mp4" {
		t.Errorf("PutObject called with (%q, %q, %q)", gotBucket, gotKey, gotContentType)
	}
}

func TestUpload_HTTPSURL(t *testing.T) {
	mock := &mockMinio{
		putObjectFn: func(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
			return minio.UploadInfo{}, nil
		},
	}

	url, err := makeStorage(mock, true).Upload(context.Background(), "thumbnails", "abc.jpg", strings.NewReader("x"), 1, "image/jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://minio.local:9000/thumbnails/abc.jpg" {
		t.Errorf("unexpected URL %q", url)
	}
}

func TestDownloadFromURL(t *testing.T) {
	var gotBucket, gotKey, gotPath string
	mock := &mockMinio{
		fGetObjectFn: func(ctx context.Context, bucketName, objectName, filePath string, opts minio.GetObjectOptions) error {
			gotBucket = bucketName
			gotKey = objectName
			gotPath = filePath
			return nil
		},
	}

	err := makeStorage(mock, false).DownloadFromURL(context.Background(), "http://minio.local:9000/uploads/owner/raw.mp4", "/tmp/work/raw.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBucket != "uploads" || gotKey != "owner/raw.mp4" || gotPath != "/tmp/work/raw.mp4" {
		t.Errorf("FGetObject called with (%q, %q, %q)", gotBucket, gotKey, gotPath)
	}
}

func TestDownloadFromURL_BadURL(t *testing.T) {
	s := makeStorage(&mockMinio{}, false)

	for _, raw := range []string{"http://minio.local:9000/", "http://minio.local:9000/bucketonly", "://bad"} {
		if err := s.DownloadFromURL(context.Background(), raw, "/tmp/out"); err == nil {
			t.Errorf("expected error for URL %q, got nil", raw)
		}
	}
}

func TestDownloadFromURL_NotFound(t *testing.T) {
	mock := &mockMinio{
		fGetObjectFn: func(ctx context.Context, bucketName, objectName, filePath string, opts minio.GetObjectOptions) error {
			return minio.ErrorResponse{Code: "NoSuchKey"}
		},
	}

	err := makeStorage(mock, false).DownloadFromURL(context.Background(), "http://minio.local:9000/uploads/missing.mp4", "/tmp/out")
	if !errors.Is(err, video.ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	var gotBucket, gotKey string
	mock := &mockMinio{
		removeObjectFn: func(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
			gotBucket = bucketName
			gotKey = objectName
			return nil
		},
	}

	err := makeStorage(mock, false).Delete(context.Background(), "http://minio.local:9000/thumbnails/abc.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBucket != "thumbnails" || gotKey != "abc.jpg" {
		t.Errorf("RemoveObject called with (%q, %q)", gotBucket, gotKey)
	}
}

func TestDelete_MapsErrors(t *testing.T) {
	mock := &mockMinio{
		removeObjectFn: func(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
			return minio.ErrorResponse{Code: "AccessDenied"}
		},
	}

	err := makeStorage(mock, false).Delete(context.Background(), "http://minio.local:9000/videos/key")
	if !errors.Is(err, video.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
