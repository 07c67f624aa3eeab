package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/finman-app/finman-backend/internal/domain"
	"github.com/finman-app/finman-backend/internal/middleware"
	"github.com/finman-app/finman-backend/internal/service"
	"github.com/finman-app/finman-backend/internal/session"
	"github.com/finman-app/finman-backend/internal/util"
)

// TransactionHandler handles the spending log HTTP requests
type TransactionHandler struct {
	txService *service.TransactionService
	sessions  *session.Store
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(txService *service.TransactionService, sessions *session.Store) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
		sessions:  sessions,
	}
}

// RecordTransactionRequest represents the record-spend request body
type RecordTransactionRequest struct {
	Month    string `json:"month"`
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
	Note     string `json:"note"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID        int64  `json:"id"`
	Category  string `json:"category"`
	Budget    int64  `json:"budget"`
	Note      string `json:"note"`
	Month     string `json:"month"`
	CreatedAt string `json:"createdAt"`
}

// RecordTransactionResponse represents the outcome of recording a spend.
// MissingBudget mirrors the home screen's "no budget set" warning.
type RecordTransactionResponse struct {
	Transaction   TransactionResponse `json:"transaction"`
	Remaining     int64               `json:"remaining"`
	MissingBudget bool                `json:"missingBudget"`
}

// DeleteTransactionResponse represents the outcome of deleting a spend
type DeleteTransactionResponse struct {
	Remaining     int64 `json:"remaining"`
	MissingBudget bool  `json:"missingBudget"`
}

// TransactionListResponse represents a page of history entries
type TransactionListResponse struct {
	Data       []TransactionResponse `json:"data"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalItems int                   `json:"totalItems"`
	TotalPages int                   `json:"totalPages"`
}

func toTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        tx.ID,
		Category:  tx.Category,
		Budget:    tx.Budget,
		Note:      tx.Note,
		Month:     tx.Month,
		CreatedAt: tx.CreatedAt,
	}
}

// Record handles POST /api/v1/transactions
func (h *TransactionHandler) Record(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req RecordTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	month, err := util.ParseYearMonth(req.Month)
	if err != nil {
		return NewValidationError(c, "Invalid month", []ValidationError{
			{Field: "month", Message: "Must be in YYYY-MM format"},
		})
	}

	result, err := h.txService.Record(c.Request().Context(), user, month, req.Category, req.Amount, req.Note)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "category", Message: "Category and note are required"},
			})
		}
		var exceeded *domain.BudgetExceededError
		if errors.As(err, &exceeded) {
			return NewBudgetExceededError(c, fmt.Sprintf("Amount %d exceeds the remaining budget %d", exceeded.Amount, exceeded.Remaining))
		}
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to record transaction")
		return NewInternalError(c, "Failed to record transaction")
	}

	h.sessions.SetUser(middleware.SessionToken(c), result.User)
	middleware.SetCurrentUser(c, result.User)

	return c.JSON(http.StatusCreated, RecordTransactionResponse{
		Transaction:   toTransactionResponse(result.Transaction),
		Remaining:     service.RemainingFor(result.User, month),
		MissingBudget: result.MissingBudget,
	})
}

// List handles GET /api/v1/transactions/:month
func (h *TransactionHandler) List(c echo.Context) error {
	user := middleware.CurrentUser(c)

	month, err := util.ParseYearMonth(c.Param("month"))
	if err != nil {
		return NewValidationError(c, "Invalid month", []ValidationError{
			{Field: "month", Message: "Must be in YYYY-MM format"},
		})
	}

	filters := domain.TransactionFilters{
		Search: c.QueryParam("search"),
	}
	switch c.QueryParam("sort") {
	case "":
		filters.Sort = domain.SortNone
	case string(domain.SortBudgetAsc):
		filters.Sort = domain.SortBudgetAsc
	case string(domain.SortBudgetDesc):
		filters.Sort = domain.SortBudgetDesc
	default:
		return NewValidationError(c, "Invalid sort", []ValidationError{
			{Field: "sort", Message: "Must be one of: asc, desc"},
		})
	}
	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return NewValidationError(c, "Invalid page", []ValidationError{
				{Field: "page", Message: "Must be a positive integer"},
			})
		}
		filters.Page = page
	}

	result, err := h.txService.ListForMonth(c.Request().Context(), user.ID, month, filters)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to list transactions")
		return NewInternalError(c, "Failed to list transactions")
	}

	data := make([]TransactionResponse, 0, len(result.Data))
	for _, tx := range result.Data {
		data = append(data, toTransactionResponse(tx))
	}
	return c.JSON(http.StatusOK, TransactionListResponse{
		Data:       data,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	})
}

// Delete handles DELETE /api/v1/transactions/:id
func (h *TransactionHandler) Delete(c echo.Context) error {
	user := middleware.CurrentUser(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid id", []ValidationError{
			{Field: "id", Message: "Must be an integer"},
		})
	}

	result, err := h.txService.Delete(c.Request().Context(), user, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int64("transaction_id", id).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}

	h.sessions.SetUser(middleware.SessionToken(c), result.User)
	middleware.SetCurrentUser(c, result.User)

	return c.JSON(http.StatusOK, DeleteTransactionResponse{
		Remaining:     remainingForStored(result.User, c.QueryParam("month")),
		MissingBudget: result.MissingBudget,
	})
}

// remainingForStored reports the remaining balance for an optional month
// query, 0 when the month is absent or malformed.
func remainingForStored(user *domain.User, rawMonth string) int64 {
	if rawMonth == "" {
		return 0
	}
	month, err := util.ParseYearMonth(rawMonth)
	if err != nil {
		return 0
	}
	return service.RemainingFor(user, month)
}
