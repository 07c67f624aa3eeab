package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/finman-app/finman-backend/internal/domain"
)

// AdminUserService backs the admin user screen: listing, filtering and
// activating/deactivating accounts. Users are never deleted, only
// deactivated.
type AdminUserService struct {
	userRepo domain.UserRepository
}

// NewAdminUserService creates a new AdminUserService
func NewAdminUserService(userRepo domain.UserRepository) *AdminUserService {
	return &AdminUserService{userRepo: userRepo}
}

// List retrieves all users
func (s *AdminUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

// Search filters users by case-insensitive substring over name or email.
func (s *AdminUserService) Search(ctx context.Context, query string) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return users, nil
	}
	var matched []*domain.User
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Fullname), query) ||
			strings.Contains(strings.ToLower(u.Email), query) {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

// ToggleStatus flips a user's active flag and returns the new value. The
// rest of the record is untouched.
func (s *AdminUserService) ToggleStatus(ctx context.Context, id int64) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	newStatus := !user.Status
	if err := s.userRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		log.Error().Err(err).Int64("user_id", id).Msg("Failed to toggle user status")
		return false, err
	}
	return newStatus, nil
}
