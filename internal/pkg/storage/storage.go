// Package storage is the object store behind catalog media. Brand icons and
// product images are written through the Storage interface; the backing
// service (S3, GCS, MinIO) is picked by configuration.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrMissingSigner indicates signed URL support is not configured.
var ErrMissingSigner = errors.New("storage: signed url signer not configured")

// Storage covers the object operations the catalog needs.
type Storage interface {
	io.Closer

	// Put stores an object and returns its metadata.
	Put(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error)
	// Delete removes an object.
	Delete(ctx context.Context, bucket, key string) error
	// PresignGet returns a time-limited download URL.
	PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

// PutOptions configures an upload.
type PutOptions struct {
	// Size is the expected content length, zero when unknown.
	Size int64
	// ContentType is the MIME type.
	ContentType string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Bucket      string
	Key         string
	Size        int64
	ETag        string
	ContentType string
}
