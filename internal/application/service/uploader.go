package service

import (
	"context"
	"io"
)

// UploadResult locates a stored object.
type UploadResult struct {
	PublicID     string
	URL          string
	ResourceType string
}

type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (*UploadResult, error)
	Delete(ctx context.Context, publicID string, resourceType string) error
	// ImageVariantURL builds a delivery URL for publicID with a transformation applied.
	ImageVariantURL(publicID string, transformation string) (string, error)
}
