package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/finman-app/finman-backend/internal/domain"
	"github.com/finman-app/finman-backend/internal/middleware"
	"github.com/finman-app/finman-backend/internal/service"
	"github.com/finman-app/finman-backend/internal/session"
)

// rememberMeTTL is the admin cookie lifetime with "remember me" checked.
const rememberMeTTL = 30 * 24 * time.Hour

// AuthHandler handles sign-up, sign-in and sign-out for users and admins
type AuthHandler struct {
	authService *service.AuthService
	sessions    *session.Store
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService, sessions *session.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// SignUpRequest represents the registration form
type SignUpRequest struct {
	Fullname        string `json:"fullname"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Phone           string `json:"phone"`
}

// SignInRequest represents the sign-in form
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminLoginRequest represents the admin login form
type AdminLoginRequest struct {
	Usename  string `json:"usename"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// UserResponse represents a user in API responses. The stored password
// never leaves the backend.
type UserResponse struct {
	ID       int64  `json:"id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Gender   bool   `json:"gender"`
	Status   bool   `json:"status"`
}

// SessionResponse represents a fresh session
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// AdminSessionResponse represents a fresh admin session
type AdminSessionResponse struct {
	Token   string `json:"token"`
	Usename string `json:"usename"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Fullname: user.Fullname,
		Email:    user.Email,
		Phone:    user.Phone,
		Gender:   user.Gender,
		Status:   user.Status,
	}
}

// SignUp handles POST /api/v1/auth/signup
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if req.Password != req.ConfirmPassword {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "confirmPassword", Message: "Passwords do not match"},
		})
	}

	user, err := h.authService.SignUp(c.Request().Context(), service.SignUpInput{
		Fullname: req.Fullname,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEmail) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "email", Message: "Must be a valid email address"},
			})
		}
		if errors.Is(err, domain.ErrPasswordTooShort) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "password", Message: "Password must be at least 6 characters"},
			})
		}
		if errors.Is(err, domain.ErrPasswordNoSymbol) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "password", Message: "Password must contain the '@' character"},
			})
		}
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return NewConflictError(c, "Email is already registered")
		}
		log.Error().Err(err).Msg("Failed to sign up user")
		return NewInternalError(c, "Failed to sign up")
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// SignIn handles POST /api/v1/auth/signin
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrBadCredentials) {
			return NewUnauthorizedError(c, "Incorrect email or password")
		}
		log.Error().Err(err).Msg("Failed to sign in user")
		return NewInternalError(c, "Failed to sign in")
	}

	token := h.sessions.SignIn(user)
	setSessionCookie(c, middleware.UserSessionCookie, token, 0)

	log.Info().Int64("user_id", user.ID).Msg("User signed in")
	return c.JSON(http.StatusOK, SessionResponse{
		Token: token.String(),
		User:  toUserResponse(user),
	})
}

// SignOut handles POST /api/v1/auth/signout
func (h *AuthHandler) SignOut(c echo.Context) error {
	h.sessions.SignOut(middleware.SessionToken(c))
	clearSessionCookie(c, middleware.UserSessionCookie)
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return NewUnauthorizedError(c, "Not signed in")
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// AdminLogin handles POST /api/v1/admin/auth/login
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	admin, err := h.authService.SignInAdmin(c.Request().Context(), req.Usename, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrBadCredentials) {
			return NewUnauthorizedError(c, "Incorrect username or password")
		}
		log.Error().Err(err).Msg("Failed to sign in admin")
		return NewInternalError(c, "Failed to sign in")
	}

	token := h.sessions.SignInAdmin(admin.Usename)
	var ttl time.Duration
	if req.Remember {
		ttl = rememberMeTTL
	}
	setSessionCookie(c, middleware.AdminSessionCookie, token, ttl)

	log.Info().Str("usename", admin.Usename).Bool("remember", req.Remember).Msg("Admin signed in")
	return c.JSON(http.StatusOK, AdminSessionResponse{
		Token:   token.String(),
		Usename: admin.Usename,
	})
}

// AdminLogout handles POST /api/v1/admin/auth/logout
func (h *AuthHandler) AdminLogout(c echo.Context) error {
	h.sessions.SignOutAdmin(middleware.SessionToken(c))
	clearSessionCookie(c, middleware.AdminSessionCookie)
	return c.NoContent(http.StatusNoContent)
}

// setSessionCookie writes a session cookie; ttl 0 means a browser-session
// cookie.
func setSessionCookie(c echo.Context, name string, token uuid.UUID, ttl time.Duration) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    token.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		cookie.Expires = time.Now().Add(ttl)
		cookie.MaxAge = int(ttl.Seconds())
	}
	c.SetCookie(cookie)
}

func clearSessionCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
