package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/finman-app/finman-backend/internal/domain"
	"github.com/finman-app/finman-backend/internal/service"
	"github.com/finman-app/finman-backend/internal/session"
	"github.com/finman-app/finman-backend/internal/testutil"
)

func newAdminCategoryHandler(categories ...*domain.AdminCategory) *AdminCategoryHandler {
	repo := testutil.NewMockAdminCategoryRepository()
	repo.Categories = append(repo.Categories, categories...)
	return NewAdminCategoryHandler(service.NewAdminCategoryService(repo))
}

func TestAdminListCategories(t *testing.T) {
	store := session.NewStore()
	handler := newAdminCategoryHandler(
		&domain.AdminCategory{ID: 1, Name: "Ăn uống", Status: true},
		&domain.AdminCategory{ID: 2, Name: "Di chuyển", Status: true},
	)

	rec := callAsAdmin(t, store, handler.List, http.MethodGet, "/api/v1/admin/categories", nil, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp []AdminCategoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(resp) != 2 {
		t.Errorf("Expected 2 categories, got %d", len(resp))
	}
}

func TestAdminListCategories_Search(t *testing.T) {
	store := session.NewStore()
	handler := newAdminCategoryHandler(
		&domain.AdminCategory{ID: 1, Name: "Ăn uống"},
		&domain.AdminCategory{ID: 2, Name: "Di chuyển"},
	)

	rec := callAsAdmin(t, store, handler.List, http.MethodGet, "/api/v1/admin/categories?search=di", nil, nil)

	var resp []AdminCategoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(resp) != 1 || resp[0].Name != "Di chuyển" {
		t.Errorf("Expected only 'Di chuyển', got %+v", resp)
	}
}

func TestAdminCreateCategory(t *testing.T) {
	store := session.NewStore()
	handler := newAdminCategoryHandler()

	body := strings.NewReader(`{"name": "Sức khỏe", "imageUrl": "https://images.example.com/health.jpg"}`)
	rec := callAsAdmin(t, store, handler.Create, http.MethodPost, "/api/v1/admin/categories", body, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp AdminCategoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.ID == 0 || resp.Name != "Sức khỏe" || !resp.Status {
		t.Errorf("Expected an active category with an id, got %+v", resp)
	}
}

func TestAdminCreateCategory_MissingName(t *testing.T) {
	store := session.NewStore()
	handler := newAdminCategoryHandler()

	body := strings.NewReader(`{"imageUrl": "https://images.example.com/health.jpg"}`)
	rec := callAsAdmin(t, store, handler.Create, http.MethodPost, "/api/v1/admin/categories", body, nil)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestAdminCreateCategory_MissingImage(t *testing.T) {
	store := session.NewStore()
	handler := newAdminCategoryHandler()

	body := strings.NewReader(`{"name": "Sức khỏe"}`)
	rec := callAsAdmin(t, store, handler.Create, http.MethodPost, "/api/v1/admin/categories", body, nil)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestAdminToggleCategoryStatus(t *testing.T) {
	store := session.NewStore()
	handler := newAdminCategoryHandler(
		&domain.AdminCategory{ID: 1, Name: "Ăn uống", Status: true},
	)

	rec := callAsAdmin(t, store, handler.ToggleStatus, http.MethodPatch, "/api/v1/admin/categories/1/status", nil, map[string]string{"id": "1"})

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ToggleStatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Status {
		t.Errorf("Expected the category to be deactivated")
	}
}

func TestAdminToggleCategoryStatus_NotFound(t *testing.T) {
	store := session.NewStore()
	handler := newAdminCategoryHandler()

	rec := callAsAdmin(t, store, handler.ToggleStatus, http.MethodPatch, "/api/v1/admin/categories/99/status", nil, map[string]string{"id": "99"})

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
