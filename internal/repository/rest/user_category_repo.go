package rest

import (
	"context"

	"github.com/finman-app/finman-backend/internal/domain"
)

// UserCategoryRepository implements domain.UserCategoryRepository over the
// userCategories collection.
type UserCategoryRepository struct {
	client *Client
}

// NewUserCategoryRepository creates a new UserCategoryRepository
func NewUserCategoryRepository(client *Client) *UserCategoryRepository {
	return &UserCategoryRepository{client: client}
}

// List retrieves the shared user catalog
func (r *UserCategoryRepository) List(ctx context.Context) ([]*domain.UserCategory, error) {
	var categories []*domain.UserCategory
	if err := r.client.get(ctx, "/userCategories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// createUserCategoryRequest is the create payload. It carries no id; sending
// one would make the backend keep it instead of assigning a fresh one.
type createUserCategoryRequest struct {
	Name  string `json:"name"`
	Limit int64  `json:"limit"`
}

// Create persists a new catalog entry. The backend assigns the id, so the
// created record is read back from the response.
func (r *UserCategoryRepository) Create(ctx context.Context, category *domain.UserCategory) (*domain.UserCategory, error) {
	payload := createUserCategoryRequest{Name: category.Name, Limit: category.Limit}
	var created domain.UserCategory
	if err := r.client.post(ctx, "/userCategories", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
