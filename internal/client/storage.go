package client

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
)

// StorageClient stores uploaded files and returns their public URL.
type StorageClient interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

type bucketStorageClient struct {
	bucket     *storage.BucketHandle
	bucketName string
}

func newBucketStorageClient(bucket *storage.BucketHandle, bucketName string) StorageClient {
	return &bucketStorageClient{bucket: bucket, bucketName: bucketName}
}

func (b *bucketStorageClient) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	// cancelling the writer's context abandons the object instead of committing what was copied
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := b.bucket.Object(name).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(w, r); err != nil {
		cancel()
		_ = w.Close()
		return "", fmt.Errorf("%w: upload %s: %v", dto.ErrInternalFailure, name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%w: finalize %s: %v", dto.ErrInternalFailure, name, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.bucketName, name), nil
}

type unconfiguredStorageClient struct{}

func (unconfiguredStorageClient) Upload(context.Context, string, string, io.Reader) (string, error) {
	return "", fmt.Errorf("%w: file storage bucket is not configured", dto.ErrInternalFailure)
}
