package asset

import (
	"context"
	"io"
)

// UploadResult is the stable reference returned by the asset store for an
// uploaded image.
type UploadResult struct {
	PublicID string
	URL      string
}

// Store is the external image store: upload bytes, delete by identifier,
// derive an optimized display URL by identifier.
type Store interface {
	Upload(ctx context.Context, file io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
	OptimizedURL(publicID string) (string, error)
}
