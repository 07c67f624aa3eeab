package rest

import (
	"context"
	"fmt"

	"github.com/finman-app/finman-backend/internal/domain"
)

// AdminCategoryRepository implements domain.AdminCategoryRepository over the
// category collection.
type AdminCategoryRepository struct {
	client *Client
}

// NewAdminCategoryRepository creates a new AdminCategoryRepository
func NewAdminCategoryRepository(client *Client) *AdminCategoryRepository {
	return &AdminCategoryRepository{client: client}
}

// List retrieves the admin catalog
func (r *AdminCategoryRepository) List(ctx context.Context) ([]*domain.AdminCategory, error) {
	var categories []*domain.AdminCategory
	if err := r.client.get(ctx, "/category", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Create persists a new admin category
func (r *AdminCategoryRepository) Create(ctx context.Context, category *domain.AdminCategory) (*domain.AdminCategory, error) {
	var created domain.AdminCategory
	if err := r.client.post(ctx, "/category", category, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStatus flips the active flag via partial update
func (r *AdminCategoryRepository) UpdateStatus(ctx context.Context, id int64, status bool) error {
	body := map[string]bool{"status": status}
	return r.client.patch(ctx, fmt.Sprintf("/category/%d", id), body, nil)
}
