// Package media wraps the S3-compatible object store posts and profile images
// live in.
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"chirper/src/config"
)

// Client is the slice of the minio client this package uses, kept narrow so
// tests can substitute a fake.
type Client interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type Store struct {
	client  Client
	bucket  string
	baseURL string
}

// New connects to the configured S3 endpoint.
func New(cfg config.S3Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}

	return &Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: scheme + "://" + cfg.Endpoint + "/" + cfg.Bucket,
	}, nil
}

// Upload stores the payload under a fresh key and returns its public URL.
func (s *Store) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	objectName := uuid.NewString()

	_, err := s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return s.baseURL + "/" + objectName, nil
}

// Delete removes the object a previously returned URL points at.
func (s *Store) Delete(ctx context.Context, ref string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectNameFromRef(ref), minio.RemoveObjectOptions{})
}

// objectNameFromRef recovers the object key from a stored URL, the last path
// segment.
func objectNameFromRef(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
