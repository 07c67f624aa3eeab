package rest

import (
	"context"

	"github.com/finman-app/finman-backend/internal/domain"
)

// AdminRepository implements domain.AdminRepository over the admin collection.
type AdminRepository struct {
	client *Client
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(client *Client) *AdminRepository {
	return &AdminRepository{client: client}
}

// List retrieves all administrator records
func (r *AdminRepository) List(ctx context.Context) ([]*domain.Administrator, error) {
	var admins []*domain.Administrator
	if err := r.client.get(ctx, "/admin", &admins); err != nil {
		return nil, err
	}
	return admins, nil
}
