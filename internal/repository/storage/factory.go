package storage

import (
	"context"
	"fmt"

	"github.com/finman-app/finman-backend/internal/config"
)

// New builds the configured image host backend.
func New(ctx context.Context, cfg config.StorageConfig) (ImageRepository, error) {
	switch cfg.Provider {
	case "cloudinary":
		return NewCloudinaryImageRepository(cfg.Cloudinary)
	case "s3":
		return NewS3ImageRepository(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}
