package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	gcs "cloud.google.com/go/storage"
)

// GCSClipStore uploads clips to a Google Cloud Storage bucket and returns
// gs:// paths. Credentials come from the ambient environment.
type GCSClipStore struct {
	client *gcs.Client
	bucket string
	prefix string
}

func NewGCSClipStore(ctx context.Context, bucket, prefix string) (*GCSClipStore, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClipStore{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (s *GCSClipStore) Store(ctx context.Context, localPath, category string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", localPath, err)
	}

	objectName := path.Join(s.prefix, category, filepath.Base(localPath))

	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload of %s: %w", objectName, err)
	}

	_ = os.Remove(localPath)

	return fmt.Sprintf("gs://%s/%s", s.bucket, objectName), nil
}

func (s *GCSClipStore) Close() error {
	return s.client.Close()
}
