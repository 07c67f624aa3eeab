package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/finman-app/finman-backend/internal/domain"
	"github.com/finman-app/finman-backend/internal/util"
)

// BudgetService interprets a user's monthlyCategories list: the total-budget
// row per month, the sub-category allocations inside it, and the remaining
// balance derived from both. All mutations clone the user, apply the change,
// and persist with a full-object replace, so a failed call leaves the caller's
// record untouched.
type BudgetService struct {
	userRepo    domain.UserRepository
	catalogRepo domain.UserCategoryRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(userRepo domain.UserRepository, catalogRepo domain.UserCategoryRepository) *BudgetService {
	return &BudgetService{
		userRepo:    userRepo,
		catalogRepo: catalogRepo,
	}
}

// TotalFor returns the budget of the month's total row, 0 when absent.
// Transactions are already folded into this value as they are recorded.
func TotalFor(user *domain.User, month util.YearMonth) int64 {
	for _, mc := range user.MonthlyCategories {
		if mc.IsTotal() && month.SameMonth(mc.Month) {
			return mc.Categories.Budget
		}
	}
	return 0
}

// SubTotalFor returns the sum of the month's sub-category allocations.
func SubTotalFor(user *domain.User, month util.YearMonth) int64 {
	var sum int64
	for _, mc := range user.MonthlyCategories {
		if !mc.IsTotal() && month.SameMonth(mc.Month) {
			sum += mc.Categories.Budget
		}
	}
	return sum
}

// RemainingFor returns the month's remaining balance: total minus the sum of
// sub-category allocations.
func RemainingFor(user *domain.User, month util.YearMonth) int64 {
	return TotalFor(user, month) - SubTotalFor(user, month)
}

// SubCategoriesFor returns the month's sub-category rows in insertion order.
func SubCategoriesFor(user *domain.User, month util.YearMonth) []domain.MonthlyCategory {
	var rows []domain.MonthlyCategory
	for _, mc := range user.MonthlyCategories {
		if !mc.IsTotal() && month.SameMonth(mc.Month) {
			rows = append(rows, mc)
		}
	}
	return rows
}

// SetMonthlyTotal sets the month's total budget. An existing total row is
// overwritten, not added to; otherwise a new row is appended with the next
// free id and the month's first day as its date.
func (s *BudgetService) SetMonthlyTotal(ctx context.Context, user *domain.User, month util.YearMonth, amount int64) (*domain.User, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	updated := user.Clone()
	replaced := false
	for i, mc := range updated.MonthlyCategories {
		if mc.IsTotal() && month.SameMonth(mc.Month) {
			updated.MonthlyCategories[i].Categories.Budget = amount
			replaced = true
			break
		}
	}
	if !replaced {
		id := util.NextID(monthlyIDs(updated))
		updated.MonthlyCategories = append(updated.MonthlyCategories, domain.MonthlyCategory{
			ID:    id,
			Month: month.FirstDay(),
			Categories: domain.CategoryBudget{
				ID:         id,
				CategoryID: domain.TotalCategoryID,
				Budget:     amount,
			},
		})
	}

	persisted, err := s.userRepo.Replace(ctx, updated)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Str("month", month.String()).Msg("Failed to persist monthly total")
		return nil, err
	}
	return persisted, nil
}

// AddSubCategory appends a sub-category allocation for the month. Duplicate
// rows for the same category are allowed; each acts as an independent
// allocation against the total.
func (s *BudgetService) AddSubCategory(ctx context.Context, user *domain.User, month util.YearMonth, categoryID, amount int64) (*domain.User, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if categoryID == domain.TotalCategoryID {
		return nil, domain.ErrCategoryNotFound
	}
	if _, err := s.categoryByID(ctx, categoryID); err != nil {
		return nil, err
	}

	remaining := RemainingFor(user, month)
	if amount > remaining {
		return nil, &domain.BudgetExceededError{Amount: amount, Remaining: remaining}
	}

	updated := user.Clone()
	id := util.NextID(monthlyIDs(updated))
	updated.MonthlyCategories = append(updated.MonthlyCategories, domain.MonthlyCategory{
		ID:    id,
		Month: month.FirstDay(),
		Categories: domain.CategoryBudget{
			ID:         id,
			CategoryID: categoryID,
			Budget:     amount,
		},
	})

	persisted, err := s.userRepo.Replace(ctx, updated)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Int64("category_id", categoryID).Msg("Failed to persist sub-category")
		return nil, err
	}
	return persisted, nil
}

// Categories returns the shared user catalog.
func (s *BudgetService) Categories(ctx context.Context) ([]*domain.UserCategory, error) {
	return s.catalogRepo.List(ctx)
}

// EnsureCategoryByName resolves a catalog entry by exact name, lazily
// creating one with limit 0 when the name is new.
func (s *BudgetService) EnsureCategoryByName(ctx context.Context, name string) (*domain.UserCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	categories, err := s.catalogRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if c.Name == name {
			return c, nil
		}
	}

	created, err := s.catalogRepo.Create(ctx, &domain.UserCategory{Name: name, Limit: 0})
	if err != nil {
		return nil, err
	}
	log.Info().Str("name", name).Int64("category_id", created.ID).Msg("Created catalog entry")
	return created, nil
}

func (s *BudgetService) categoryByID(ctx context.Context, id int64) (*domain.UserCategory, error) {
	categories, err := s.catalogRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func monthlyIDs(user *domain.User) []int64 {
	ids := make([]int64, len(user.MonthlyCategories))
	for i, mc := range user.MonthlyCategories {
		ids[i] = mc.ID
	}
	return ids
}
