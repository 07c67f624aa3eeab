package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/finman-app/finman-backend/internal/domain"
	"github.com/finman-app/finman-backend/internal/session"
)

const (
	// UserSessionCookie carries the user session token
	UserSessionCookie = "finman_session"
	// AdminSessionCookie carries the administrator session token
	AdminSessionCookie = "finman_admin_session"

	// userContextKey is the echo context key for the signed-in user
	userContextKey = "session_user"
	// adminContextKey is the echo context key for the signed-in admin name
	adminContextKey = "session_admin"
	// tokenContextKey is the echo context key for the session token
	tokenContextKey = "session_token"
)

// SessionAuthMiddleware resolves session tokens against the in-memory store.
// Tokens travel either as a Bearer header or in the session cookie; the
// header wins when both are present.
type SessionAuthMiddleware struct {
	store *session.Store
}

// NewSessionAuthMiddleware creates a new SessionAuthMiddleware
func NewSessionAuthMiddleware(store *session.Store) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{store: store}
}

// AuthenticateUser returns an Echo middleware that requires a user session
func (m *SessionAuthMiddleware) AuthenticateUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := requestToken(c, UserSessionCookie)
			if !ok {
				return unauthorizedError(c, "missing session token")
			}
			user, ok := m.store.User(token)
			if !ok {
				log.Debug().Str("token", token.String()).Msg("Unknown user session token")
				return unauthorizedError(c, "invalid or expired session")
			}
			c.Set(userContextKey, user)
			c.Set(tokenContextKey, token)
			return next(c)
		}
	}
}

// AuthenticateAdmin returns an Echo middleware that requires an admin session
func (m *SessionAuthMiddleware) AuthenticateAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := requestToken(c, AdminSessionCookie)
			if !ok {
				return unauthorizedError(c, "missing session token")
			}
			usename, ok := m.store.Admin(token)
			if !ok {
				log.Debug().Str("token", token.String()).Msg("Unknown admin session token")
				return unauthorizedError(c, "invalid or expired session")
			}
			c.Set(adminContextKey, usename)
			c.Set(tokenContextKey, token)
			return next(c)
		}
	}
}

// CurrentUser returns the signed-in user from the context, nil when absent
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}

// SetCurrentUser replaces the context's user, for handlers that refresh it
// after a mutation.
func SetCurrentUser(c echo.Context, user *domain.User) {
	c.Set(userContextKey, user)
}

// CurrentAdmin returns the signed-in admin name from the context
func CurrentAdmin(c echo.Context) string {
	usename, _ := c.Get(adminContextKey).(string)
	return usename
}

// SessionToken returns the request's session token, uuid.Nil when absent
func SessionToken(c echo.Context) uuid.UUID {
	token, ok := c.Get(tokenContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return token
}

// requestToken extracts and parses the session token from the Authorization
// header or the named cookie.
func requestToken(c echo.Context, cookieName string) (uuid.UUID, bool) {
	raw := ""
	if header := c.Request().Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			raw = parts[1]
		}
	}
	if raw == "" {
		cookie, err := c.Cookie(cookieName)
		if err != nil {
			return uuid.Nil, false
		}
		raw = cookie.Value
	}

	token, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return token, true
}
