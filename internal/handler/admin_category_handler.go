package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/finman-app/finman-backend/internal/domain"
	"github.com/finman-app/finman-backend/internal/service"
)

// AdminCategoryHandler handles the admin catalog HTTP requests
type AdminCategoryHandler struct {
	categoryService *service.AdminCategoryService
}

// NewAdminCategoryHandler creates a new AdminCategoryHandler
func NewAdminCategoryHandler(categoryService *service.AdminCategoryService) *AdminCategoryHandler {
	return &AdminCategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the add-category request body
type CreateCategoryRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// AdminCategoryResponse represents a category row on the admin screen
type AdminCategoryResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Status   bool   `json:"status"`
}

func toAdminCategoryResponse(category *domain.AdminCategory) AdminCategoryResponse {
	return AdminCategoryResponse{
		ID:       category.ID,
		Name:     category.Name,
		ImageURL: category.ImageURL,
		Status:   category.Status,
	}
}

// List handles GET /api/v1/admin/categories. An optional search query
// filters by name.
func (h *AdminCategoryHandler) List(c echo.Context) error {
	categories, err := h.categoryService.Search(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list admin categories")
		return NewInternalError(c, "Failed to list categories")
	}

	resp := make([]AdminCategoryResponse, 0, len(categories))
	for _, category := range categories {
		resp = append(resp, toAdminCategoryResponse(category))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/v1/admin/categories
func (h *AdminCategoryHandler) Create(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.Create(c.Request().Context(), req.Name, req.ImageURL)
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrImageRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "imageUrl", Message: "Image is required"},
			})
		}
		log.Error().Err(err).Msg("Failed to create admin category")
		return NewInternalError(c, "Failed to create category")
	}

	return c.JSON(http.StatusCreated, toAdminCategoryResponse(category))
}

// ToggleStatus handles PATCH /api/v1/admin/categories/:id/status
func (h *AdminCategoryHandler) ToggleStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid id", []ValidationError{
			{Field: "id", Message: "Must be an integer"},
		})
	}

	status, err := h.categoryService.ToggleStatus(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		log.Error().Err(err).Int64("category_id", id).Msg("Failed to toggle category status")
		return NewInternalError(c, "Failed to toggle category status")
	}

	return c.JSON(http.StatusOK, ToggleStatusResponse{ID: id, Status: status})
}
