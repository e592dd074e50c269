package utils

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSUploader writes objects to one bucket.
type GCSUploader struct {
	client *storage.Client
	bucket string
}

// NewGCSUploader prefers explicit credentials JSON and falls back to
// application default credentials.
func NewGCSUploader(ctx context.Context, bucket string, credentialsJSON []byte) (*GCSUploader, error) {
	var (
		client *storage.Client
		err    error
	)
	if len(strings.TrimSpace(string(credentialsJSON))) > 0 {
		client, err = storage.NewClient(ctx, option.WithCredentialsJSON(credentialsJSON))
	} else {
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &GCSUploader{client: client, bucket: bucket}, nil
}

// Upload stores data at objectName and returns its public URL.
func (u *GCSUploader) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	wc := u.client.Bucket(u.bucket).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=31536000"

	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("failed to upload bytes to Google Cloud Storage: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, objectName), nil
}

func (u *GCSUploader) Close() error {
	return u.client.Close()
}
