package storage

import "context"

// ImageRepository defines the interface for image host uploads. The returned
// URL is what the admin add-category flow stores as imageUrl.
type ImageRepository interface {
	Upload(ctx context.Context, filename string, data []byte, contentType string) (string, error)
}
