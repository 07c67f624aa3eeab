package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/finman-app/finman-backend/internal/domain"
	"github.com/finman-app/finman-backend/internal/util"
)

// AdminCategoryService manages the admin catalog: the categories with images
// and active flags, separate from the user catalog.
type AdminCategoryService struct {
	categoryRepo domain.AdminCategoryRepository
}

// NewAdminCategoryService creates a new AdminCategoryService
func NewAdminCategoryService(categoryRepo domain.AdminCategoryRepository) *AdminCategoryService {
	return &AdminCategoryService{categoryRepo: categoryRepo}
}

// List retrieves all admin categories
func (s *AdminCategoryService) List(ctx context.Context) ([]*domain.AdminCategory, error) {
	return s.categoryRepo.List(ctx)
}

// Search filters categories by case-insensitive name substring.
func (s *AdminCategoryService) Search(ctx context.Context, query string) ([]*domain.AdminCategory, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return categories, nil
	}
	var matched []*domain.AdminCategory
	for _, c := range categories {
		if strings.Contains(strings.ToLower(c.Name), query) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// Create adds a category. The image must already be uploaded to the image
// host; its URL is required.
func (s *AdminCategoryService) Create(ctx context.Context, name, imageURL string) (*domain.AdminCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if strings.TrimSpace(imageURL) == "" {
		return nil, domain.ErrImageRequired
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}

	category := &domain.AdminCategory{
		ID:       util.NextID(ids),
		Name:     name,
		ImageURL: imageURL,
		Status:   true,
	}
	created, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("Failed to create admin category")
		return nil, err
	}
	return created, nil
}

// ToggleStatus flips a category's active flag and returns the new value.
func (s *AdminCategoryService) ToggleStatus(ctx context.Context, id int64) (bool, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return false, err
	}
	for _, c := range categories {
		if c.ID == id {
			newStatus := !c.Status
			if err := s.categoryRepo.UpdateStatus(ctx, id, newStatus); err != nil {
				log.Error().Err(err).Int64("category_id", id).Msg("Failed to toggle category status")
				return false, err
			}
			return newStatus, nil
		}
	}
	return false, domain.ErrNotFound
}
