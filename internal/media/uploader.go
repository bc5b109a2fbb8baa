package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/anousone23/twitter-clone/internal/config"
)

// Uploader stores client-submitted images on the asset host and returns
// their public URLs.
type Uploader interface {
	UploadDataURL(ctx context.Context, dataURL string) (string, error)
	Remove(ctx context.Context, objectURL string) error
}

// MinioUploader implements Uploader against an S3-compatible MinIO bucket.
type MinioUploader struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioUploader connects to MinIO and makes sure the bucket exists.
func NewMinioUploader(ctx context.Context, cfg config.MinioConfig) (*MinioUploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio connect: %w", err)
	}
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}
	return &MinioUploader{client: client, bucket: cfg.Bucket, publicURL: cfg.PublicURL}, nil
}

// UploadDataURL decodes a base64 data URL ("data:image/png;base64,....")
// and stores it under a random object name, returning the public URL.
func (u *MinioUploader) UploadDataURL(ctx context.Context, dataURL string) (string, error) {
	contentType, data, err := DecodeDataURL(dataURL)
	if err != nil {
		return "", err
	}
	objectName := uuid.New().String() + extensionFor(contentType)
	_, err = u.client.PutObject(ctx, u.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("minio put: %w", err)
	}
	return u.publicURL + "/" + u.bucket + "/" + objectName, nil
}

// Remove deletes the object a previously returned URL points at. URLs that
// do not belong to this bucket are ignored.
func (u *MinioUploader) Remove(ctx context.Context, objectURL string) error {
	prefix := u.publicURL + "/" + u.bucket + "/"
	if !strings.HasPrefix(objectURL, prefix) {
		return nil
	}
	objectName := strings.TrimPrefix(objectURL, prefix)
	if objectName == "" {
		return nil
	}
	return u.client.RemoveObject(ctx, u.bucket, objectName, minio.RemoveObjectOptions{})
}

// DecodeDataURL splits a base64 data URL into content type and raw bytes.
func DecodeDataURL(dataURL string) (contentType string, data []byte, err error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(dataURL[len("data:"):], ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL")
	}
	contentType, _, _ = strings.Cut(meta, ";")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URL: %w", err)
	}
	return contentType, data, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
