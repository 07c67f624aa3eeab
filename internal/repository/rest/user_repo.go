package rest

import (
	"context"
	"fmt"

	"github.com/finman-app/finman-backend/internal/domain"
)

// UserRepository implements domain.UserRepository over the users collection.
type UserRepository struct {
	client *Client
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client *Client) *UserRepository {
	return &UserRepository{client: client}
}

// List retrieves all users
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	if err := r.client.get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	if err := r.client.get(ctx, fmt.Sprintf("/users/%d", id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create persists a new user record
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	var created domain.User
	if err := r.client.post(ctx, "/users", user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Replace performs a full-object update of the user record
func (r *UserRepository) Replace(ctx context.Context, user *domain.User) (*domain.User, error) {
	var updated domain.User
	if err := r.client.put(ctx, fmt.Sprintf("/users/%d", user.ID), user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateStatus flips the active flag via partial update
func (r *UserRepository) UpdateStatus(ctx context.Context, id int64, status bool) error {
	body := map[string]bool{"status": status}
	return r.client.patch(ctx, fmt.Sprintf("/users/%d", id), body, nil)
}
