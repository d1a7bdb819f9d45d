package app

import "context"

// BlobStore keeps uploaded image bytes under opaque keys.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	// Get returns ErrNotFound for unknown keys.
	Get(ctx context.Context, key string) ([]byte, string, error)
}
