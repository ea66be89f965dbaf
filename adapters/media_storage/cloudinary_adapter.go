package media_storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/khoahotran/campus-connect/internal/application/service"
	"github.com/khoahotran/campus-connect/internal/config"
	"github.com/khoahotran/campus-connect/pkg/logger"
)

type cloudinaryAdapter struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryAdapter(cfg config.Config, log logger.Logger) (service.Uploader, error) {

	if cfg.Cloudinary.CloudName == "" {
		return nil, fmt.Errorf("cloudinary cloud_name has not config")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.ApiKey,
		cfg.Cloudinary.ApiSecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot init cloudinary: %w", err)
	}

	log.Info("connect Cloudinary successfully.")
	return &cloudinaryAdapter{cld: cld}, nil
}

// Upload stores any kind of file; Cloudinary detects image, video or raw.
func (a *cloudinaryAdapter) Upload(ctx context.Context, file io.Reader, folder string, publicID string) (*service.UploadResult, error) {
	uploadParams := uploader.UploadParams{
		PublicID:     publicID,
		Folder:       folder,
		ResourceType: "auto",
	}
	result, err := a.cld.Upload.Upload(ctx, file, uploadParams)
	if err != nil {
		return nil, fmt.Errorf("failed to upload cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary rejected upload: %s", result.Error.Message)
	}
	return &service.UploadResult{
		PublicID:     result.PublicID,
		URL:          result.SecureURL,
		ResourceType: result.ResourceType,
	}, nil
}

func (a *cloudinaryAdapter) Delete(ctx context.Context, publicID string, resourceType string) error {
	_, err := a.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("failed to delete cloudinary: %w", err)
	}
	return nil
}

func (a *cloudinaryAdapter) ImageVariantURL(publicID string, transformation string) (string, error) {
	img, err := a.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("failed to create cloudinary asset: %w", err)
	}
	img.Transformation = transformation
	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("failed to build image URL: %w", err)
	}
	return url, nil
}
