package handler

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/finman-app/finman-backend/internal/domain"
	"github.com/finman-app/finman-backend/internal/middleware"
	"github.com/finman-app/finman-backend/internal/session"
)

// callAsUser runs a handler through the user session middleware, the way the
// router wires it.
func callAsUser(t *testing.T, store *session.Store, user *domain.User, h echo.HandlerFunc, method, target string, body io.Reader, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	token := store.SignIn(user)

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token.String())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setParams(c, params)

	m := middleware.NewSessionAuthMiddleware(store)
	if err := m.AuthenticateUser()(h)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return rec
}

// callAsAdmin runs a handler through the admin session middleware.
func callAsAdmin(t *testing.T, store *session.Store, h echo.HandlerFunc, method, target string, body io.Reader, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	token := store.SignInAdmin("admin")

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token.String())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setParams(c, params)

	m := middleware.NewSessionAuthMiddleware(store)
	if err := m.AuthenticateAdmin()(h)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return rec
}

func setParams(c echo.Context, params map[string]string) {
	if len(params) == 0 {
		return
	}
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for name, value := range params {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
}

func totalRow(id int64, month string, budget int64) domain.MonthlyCategory {
	return domain.MonthlyCategory{
		ID:    id,
		Month: month,
		Categories: domain.CategoryBudget{
			ID:         id,
			CategoryID: domain.TotalCategoryID,
			Budget:     budget,
		},
	}
}

func subRow(id int64, month string, categoryID, budget int64) domain.MonthlyCategory {
	return domain.MonthlyCategory{
		ID:    id,
		Month: month,
		Categories: domain.CategoryBudget{
			ID:         id,
			CategoryID: categoryID,
			Budget:     budget,
		},
	}
}
