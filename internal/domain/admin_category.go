package domain

import "context"

// AdminCategory is the admin-managed catalog with images and active flags,
// independent of the user catalog.
type AdminCategory struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Status   bool   `json:"status"`
}

type AdminCategoryRepository interface {
	List(ctx context.Context) ([]*AdminCategory, error)
	Create(ctx context.Context, category *AdminCategory) (*AdminCategory, error)
	UpdateStatus(ctx context.Context, id int64, status bool) error
}
