package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/finman-app/finman-backend/internal/domain"
	"github.com/finman-app/finman-backend/internal/service"
	"github.com/finman-app/finman-backend/internal/session"
)

// AdminUserHandler handles the admin user screen HTTP requests
type AdminUserHandler struct {
	userService *service.AdminUserService
	sessions    *session.Store
}

// NewAdminUserHandler creates a new AdminUserHandler
func NewAdminUserHandler(userService *service.AdminUserService, sessions *session.Store) *AdminUserHandler {
	return &AdminUserHandler{
		userService: userService,
		sessions:    sessions,
	}
}

// AdminUserResponse represents a user row on the admin screen
type AdminUserResponse struct {
	ID       int64  `json:"id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Gender   bool   `json:"gender"`
	Status   bool   `json:"status"`
}

// ToggleStatusResponse represents the outcome of a status toggle
type ToggleStatusResponse struct {
	ID     int64 `json:"id"`
	Status bool  `json:"status"`
}

func toAdminUserResponse(user *domain.User) AdminUserResponse {
	return AdminUserResponse{
		ID:       user.ID,
		Fullname: user.Fullname,
		Email:    user.Email,
		Phone:    user.Phone,
		Gender:   user.Gender,
		Status:   user.Status,
	}
}

// List handles GET /api/v1/admin/users. An optional search query filters by
// name or email.
func (h *AdminUserHandler) List(c echo.Context) error {
	users, err := h.userService.Search(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		return NewInternalError(c, "Failed to list users")
	}

	// The admin screens work from this cached list between refreshes.
	h.sessions.SetUsers(users)

	resp := make([]AdminUserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, toAdminUserResponse(user))
	}
	return c.JSON(http.StatusOK, resp)
}

// ToggleStatus handles PATCH /api/v1/admin/users/:id/status
func (h *AdminUserHandler) ToggleStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid id", []ValidationError{
			{Field: "id", Message: "Must be an integer"},
		})
	}

	status, err := h.userService.ToggleStatus(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Int64("user_id", id).Msg("Failed to toggle user status")
		return NewInternalError(c, "Failed to toggle user status")
	}

	// Keep the cached list consistent without a second backend round-trip.
	for _, user := range h.sessions.Users() {
		if user.ID == id {
			user.Status = status
			break
		}
	}

	return c.JSON(http.StatusOK, ToggleStatusResponse{ID: id, Status: status})
}
