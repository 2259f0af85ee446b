package storage

import (
	"context"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// GCSAdapter implements Storage on Google Cloud Storage.
type GCSAdapter struct {
	client *gcs.Client
	signer *gcsSigner
}

// GCSOptions configures the GCS client.
type GCSOptions struct {
	// CredentialsJSON is service account key material. When empty the
	// client falls back to application default credentials and signed URLs
	// are unavailable.
	CredentialsJSON []byte
}

type gcsSigner struct {
	accessID   string
	privateKey []byte
}

// NewGCS builds a GCS adapter. Signing credentials are derived from the
// service account JSON when provided.
func NewGCS(ctx context.Context, opts GCSOptions) (*GCSAdapter, error) {
	var clientOpts []option.ClientOption
	var signer *gcsSigner

	if len(opts.CredentialsJSON) > 0 {
		clientOpts = append(clientOpts, option.WithCredentialsJSON(opts.CredentialsJSON))

		if jwtCfg, err := google.JWTConfigFromJSON(opts.CredentialsJSON, gcs.ScopeReadWrite); err == nil {
			signer = &gcsSigner{accessID: jwtCfg.Email, privateKey: jwtCfg.PrivateKey}
		}
	}

	client, err := gcs.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, err
	}

	return &GCSAdapter{client: client, signer: signer}, nil
}

// Put stores an object.
func (a *GCSAdapter) Put(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error) {
	writer := a.client.Bucket(bucket).Object(key).NewWriter(ctx)
	if opts.ContentType != "" {
		writer.ContentType = opts.ContentType
	}

	if _, err := io.Copy(writer, r); err != nil {
		writer.Close()
		return ObjectInfo{}, err
	}
	if err := writer.Close(); err != nil {
		return ObjectInfo{}, err
	}

	info := ObjectInfo{Bucket: bucket, Key: key, Size: opts.Size, ContentType: opts.ContentType}
	if attrs := writer.Attrs(); attrs != nil {
		info.Size = attrs.Size
		info.ETag = attrs.Etag
		info.ContentType = attrs.ContentType
	}
	return info, nil
}

// Delete removes an object.
func (a *GCSAdapter) Delete(ctx context.Context, bucket, key string) error {
	return a.client.Bucket(bucket).Object(key).Delete(ctx)
}

// PresignGet returns a time-limited download URL.
func (a *GCSAdapter) PresignGet(_ context.Context, bucket, key string, expiry time.Duration) (string, error) {
	if a.signer == nil {
		return "", ErrMissingSigner
	}

	return gcs.SignedURL(bucket, key, &gcs.SignedURLOptions{
		Method:         "GET",
		Expires:        time.Now().Add(expiry),
		GoogleAccessID: a.signer.accessID,
		PrivateKey:     a.signer.privateKey,
	})
}

// Close closes the client.
func (a *GCSAdapter) Close() error {
	return a.client.Close()
}
