package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/finman-app/finman-backend/internal/domain"
	"github.com/finman-app/finman-backend/internal/middleware"
	"github.com/finman-app/finman-backend/internal/service"
	"github.com/finman-app/finman-backend/internal/session"
	"github.com/finman-app/finman-backend/internal/util"
)

// BudgetHandler handles the home-screen budget requests
type BudgetHandler struct {
	budgetService *service.BudgetService
	txService     *service.TransactionService
	sessions      *session.Store
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService, txService *service.TransactionService, sessions *session.Store) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		txService:     txService,
		sessions:      sessions,
	}
}

// SetTotalRequest represents the set-monthly-total request body
type SetTotalRequest struct {
	Amount int64 `json:"amount"`
}

// AddCategoryRequest represents the add-sub-category request body. Either
// an existing categoryId or a new name is given; a name is resolved against
// the catalog, creating the entry when it is new.
type AddCategoryRequest struct {
	CategoryID int64  `json:"categoryId,omitempty"`
	Name       string `json:"name,omitempty"`
	Amount     int64  `json:"amount"`
}

// BudgetRowResponse represents one sub-category allocation row
type BudgetRowResponse struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name,omitempty"`
	Budget     int64  `json:"budget"`
}

// BudgetSummaryResponse represents the month's budget state
type BudgetSummaryResponse struct {
	Month      string              `json:"month"`
	Total      int64               `json:"total"`
	SubTotal   int64               `json:"subTotal"`
	Remaining  int64               `json:"remaining"`
	Categories []BudgetRowResponse `json:"categories"`
}

// CategoryResponse represents a catalog entry
type CategoryResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Limit int64  `json:"limit"`
}

func monthParam(c echo.Context) (util.YearMonth, error) {
	return util.ParseYearMonth(c.Param("month"))
}

func (h *BudgetHandler) summary(c echo.Context, user *domain.User, month util.YearMonth) BudgetSummaryResponse {
	names := map[int64]string{}
	if categories, err := h.budgetService.Categories(c.Request().Context()); err == nil {
		for _, cat := range categories {
			names[cat.ID] = cat.Name
		}
	}

	rows := service.SubCategoriesFor(user, month)
	categories := make([]BudgetRowResponse, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, BudgetRowResponse{
			ID:         row.ID,
			CategoryID: row.Categories.CategoryID,
			Name:       names[row.Categories.CategoryID],
			Budget:     row.Categories.Budget,
		})
	}

	return BudgetSummaryResponse{
		Month:      month.String(),
		Total:      service.TotalFor(user, month),
		SubTotal:   service.SubTotalFor(user, month),
		Remaining:  service.RemainingFor(user, month),
		Categories: categories,
	}
}

// GetSummary handles GET /api/v1/budget/:month
func (h *BudgetHandler) GetSummary(c echo.Context) error {
	user := middleware.CurrentUser(c)
	month, err := monthParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid month", []ValidationError{
			{Field: "month", Message: "Must be in YYYY-MM format"},
		})
	}
	return c.JSON(http.StatusOK, h.summary(c, user, month))
}

// SetTotal handles PUT /api/v1/budget/:month/total
func (h *BudgetHandler) SetTotal(c echo.Context) error {
	user := middleware.CurrentUser(c)
	month, err := monthParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid month", []ValidationError{
			{Field: "month", Message: "Must be in YYYY-MM format"},
		})
	}

	var req SetTotalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	updated, err := h.budgetService.SetMonthlyTotal(c.Request().Context(), user, month, req.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		}
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to set monthly total")
		return NewInternalError(c, "Failed to set monthly total")
	}

	h.sessions.SetUser(middleware.SessionToken(c), updated)
	middleware.SetCurrentUser(c, updated)
	return c.JSON(http.StatusOK, h.summary(c, updated, month))
}

// AddCategory handles POST /api/v1/budget/:month/categories
func (h *BudgetHandler) AddCategory(c echo.Context) error {
	user := middleware.CurrentUser(c)
	month, err := monthParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid month", []ValidationError{
			{Field: "month", Message: "Must be in YYYY-MM format"},
		})
	}

	var req AddCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	categoryID := req.CategoryID
	categoryName := req.Name
	if categoryID == 0 {
		category, err := h.budgetService.EnsureCategoryByName(c.Request().Context(), req.Name)
		if err != nil {
			if errors.Is(err, domain.ErrNameRequired) {
				return NewValidationError(c, "Validation failed", []ValidationError{
					{Field: "name", Message: "Category id or name is required"},
				})
			}
			log.Error().Err(err).Msg("Failed to resolve category name")
			return NewInternalError(c, "Failed to resolve category")
		}
		categoryID = category.ID
		categoryName = category.Name
	}

	updated, err := h.budgetService.AddSubCategory(c.Request().Context(), user, month, categoryID, req.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		}
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		var exceeded *domain.BudgetExceededError
		if errors.As(err, &exceeded) {
			return NewBudgetExceededError(c, fmt.Sprintf("Amount %d exceeds the remaining budget %d", exceeded.Amount, exceeded.Remaining))
		}
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to add sub-category")
		return NewInternalError(c, "Failed to add sub-category")
	}

	if categoryName == "" {
		if categories, lookupErr := h.budgetService.Categories(c.Request().Context()); lookupErr == nil {
			for _, cat := range categories {
				if cat.ID == categoryID {
					categoryName = cat.Name
					break
				}
			}
		}
	}

	// The history entry is advisory; the allocation is already applied.
	if categoryName != "" {
		if _, err := h.txService.RecordAllocation(c.Request().Context(), updated, month, categoryName, req.Amount); err != nil {
			log.Warn().Err(err).Int64("user_id", user.ID).Msg("Failed to append allocation history entry")
		}
	}

	h.sessions.SetUser(middleware.SessionToken(c), updated)
	middleware.SetCurrentUser(c, updated)
	return c.JSON(http.StatusCreated, h.summary(c, updated, month))
}

// Categories handles GET /api/v1/categories
func (h *BudgetHandler) Categories(c echo.Context) error {
	categories, err := h.budgetService.Categories(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list catalog")
		return NewInternalError(c, "Failed to list categories")
	}

	resp := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, CategoryResponse{ID: cat.ID, Name: cat.Name, Limit: cat.Limit})
	}
	return c.JSON(http.StatusOK, resp)
}
