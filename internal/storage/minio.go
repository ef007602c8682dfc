package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/rulprep/rulprep/internal/config"
)

// Uploader is the object-storage boundary used by the pipeline: push named
// files to a bucket+prefix address and pull prediction output back.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte) error
	Download(ctx context.Context, key string) ([]byte, error)
}

// MinIO implements Uploader over an S3-compatible endpoint.
type MinIO struct {
	client *minio.Client
	bucket string
}

// NewMinIO builds a MinIO client from the storage config. Credentials are
// resolved from the environment variables named in cfg.
func NewMinIO(cfg config.StorageConfig) (*MinIO, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey(), cfg.SecretKey(), ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: create client: %w", err)
	}
	return &MinIO{client: client, bucket: cfg.Bucket}, nil
}

// Upload writes body to bucket/key.
func (m *MinIO) Upload(ctx context.Context, key string, body []byte) error {
	_, err := m.client.PutObject(
		ctx,
		m.bucket,
		key,
		bytes.NewReader(body),
		int64(len(body)),
		minio.PutObjectOptions{ContentType: "text/csv"},
	)
	if err != nil {
		return fmt.Errorf("storage: put %s: %w", key, err)
	}
	return nil
}

// Download reads the full object at bucket/key.
func (m *MinIO) Download(ctx context.Context, key string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("storage: get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", key, err)
	}
	return data, nil
}
