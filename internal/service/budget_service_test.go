package service

import (
	"context"
	"errors"
	"testing"

	"github.com/finman-app/finman-backend/internal/domain"
	"github.com/finman-app/finman-backend/internal/testutil"
	"github.com/finman-app/finman-backend/internal/util"
)

func mustMonth(t *testing.T, value string) util.YearMonth {
	t.Helper()
	month, err := util.ParseYearMonth(value)
	if err != nil {
		t.Fatalf("Failed to parse month %q: %v", value, err)
	}
	return month
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

func TestSetMonthlyTotal_FreshMonth(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	catalogRepo := testutil.NewMockUserCategoryRepository()
	budgetService := NewBudgetService(userRepo, catalogRepo)

	user := &domain.User{ID: 3, MonthlyCategories: []domain.MonthlyCategory{}}
	userRepo.AddUser(user)

	month := mustMonth(t, "2025-01")
	updated, err := budgetService.SetMonthlyTotal(context.Background(), user, month, 10_000_000)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(updated.MonthlyCategories) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(updated.MonthlyCategories))
	}
	row := updated.MonthlyCategories[0]
	if row.ID != 1 {
		t.Errorf("Expected row id 1, got %d", row.ID)
	}
	if row.Month != "2025-01-01" {
		t.Errorf("Expected month '2025-01-01', got %s", row.Month)
	}
	if !row.IsTotal() {
		t.Errorf("Expected a total row, got categoryId %d", row.Categories.CategoryID)
	}
	if row.Categories.Budget != 10_000_000 {
		t.Errorf("Expected budget 10000000, got %d", row.Categories.Budget)
	}
	if row.Categories.ID != row.ID {
		t.Errorf("Expected mirrored ids, got %d and %d", row.ID, row.Categories.ID)
	}

	if got := RemainingFor(updated, month); got != 10_000_000 {
		t.Errorf("Expected remaining 10000000, got %d", got)
	}
}

func TestSetMonthlyTotal_OverwritesExistingRow(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	catalogRepo := testutil.NewMockUserCategoryRepository()
	budgetService := NewBudgetService(userRepo, catalogRepo)

	user := &domain.User{ID: 3, MonthlyCategories: []domain.MonthlyCategory{
		totalRow(1, "2025-01-01", 10_000_000),
		subRow(2, "2025-01-01", 4, 3_000_000),
	}}
	userRepo.AddUser(user)

	month := mustMonth(t, "2025-01")
	updated, err := budgetService.SetMonthlyTotal(context.Background(), user, month, 12_000_000)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(updated.MonthlyCategories) != 2 {
		t.Fatalf("Expected row count unchanged at 2, got %d", len(updated.MonthlyCategories))
	}
	if updated.MonthlyCategories[0].Categories.Budget != 12_000_000 {
		t.Errorf("Expected total 12000000, got %d", updated.MonthlyCategories[0].Categories.Budget)
	}
	if got := RemainingFor(updated, month); got != 9_000_000 {
		t.Errorf("Expected remaining 9000000, got %d", got)
	}
}

func TestSetMonthlyTotal_LeavesOtherMonthsAlone(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	catalogRepo := testutil.NewMockUserCategoryRepository()
	budgetService := NewBudgetService(userRepo, catalogRepo)

	user := &domain.User{ID: 3, MonthlyCategories: []domain.MonthlyCategory{
		totalRow(1, "2025-01-01", 10_000_000),
	}}
	userRepo.AddUser(user)

	updated, err := budgetService.SetMonthlyTotal(context.Background(), user, mustMonth(t, "2025-02"), 5_000_000)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(updated.MonthlyCategories) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(updated.MonthlyCategories))
	}
	if updated.MonthlyCategories[0].Categories.Budget != 10_000_000 {
		t.Errorf("Expected January untouched at 10000000, got %d", updated.MonthlyCategories[0].Categories.Budget)
	}
	if updated.MonthlyCategories[1].ID != 2 {
		t.Errorf("Expected new row id 2, got %d", updated.MonthlyCategories[1].ID)
	}
	if updated.MonthlyCategories[1].Month != "2025-02-01" {
		t.Errorf("Expected month '2025-02-01', got %s", updated.MonthlyCategories[1].Month)
	}
}

func TestSetMonthlyTotal_RejectsNonPositiveAmount(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	catalogRepo := testutil.NewMockUserCategoryRepository()
	budgetService := NewBudgetService(userRepo, catalogRepo)

	user := &domain.User{ID: 3}
	userRepo.AddUser(user)

	for _, amount := range []int64{0, -500} {
		_, err := budgetService.SetMonthlyTotal(context.Background(), user, mustMonth(t, "2025-01"), amount)
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("Expected ErrInvalidAmount for %d, got %v", amount, err)
		}
	}
}

func TestSetMonthlyTotal_DoesNotMutateCaller(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	catalogRepo := testutil.NewMockUserCategoryRepository()
	budgetService := NewBudgetService(userRepo, catalogRepo)

	user := &domain.User{ID: 3, MonthlyCategories: []domain.MonthlyCategory{}}
	userRepo.AddUser(user)

	_, err := budgetService.SetMonthlyTotal(context.Background(), user, mustMonth(t, "2025-01"), 1_000_000)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(user.MonthlyCategories) != 0 {
		t.Errorf("Expected caller's record untouched, got %d rows", len(user.MonthlyCategories))
	}
}

func TestAddSubCategory_Success(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	catalogRepo := testutil.NewMockUserCategoryRepository()
	catalogRepo.AddCategory(&domain.UserCategory{ID: 4, Name: "Ăn uống", Limit: 5_000_000})
	budgetService := NewBudgetService(userRepo, catalogRepo)

	user := &domain.User{ID: 3, MonthlyCategories: []domain.MonthlyCategory{
		totalRow(1, "2025-01-01", 10_000_000),
	}}
	userRepo.AddUser(user)

	month := mustMonth(t, "2025-01")
	updated, err := budgetService.AddSubCategory(context.Background(), user, month, 4, 3_000_000)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	subs := SubCategoriesFor(updated, month)
	if len(subs) != 1 {
		t.Fatalf("Expected 1 sub-category, got %d", len(subs))
	}
	if subs[0].Categories.CategoryID != 4 {
		t.Errorf("Expected categoryId 4, got %d", subs[0].Categories.CategoryID)
	}
	if subs[0].Categories.Budget != 3_000_000 {
		t.Errorf("Expected budget 3000000, got %d", subs[0].Categories.Budget)
	}
	if got := RemainingFor(updated, month); got != 7_000_000 {
		t.Errorf("Expected remaining 7000000, got %d", got)
	}
	if got := TotalFor(updated, month); got != 10_000_000 {
		t.Errorf("Expected total row unchanged at 10000000, got %d", got)
	}
}

func TestAddSubCategory_AllowsDuplicateCategory(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	catalogRepo := testutil.NewMockUserCategoryRepository()
	catalogRepo.AddCategory(&domain.UserCategory{ID: 4, Name: "Ăn uống", Limit: 5_000_000})
	budgetService := NewBudgetService(userRepo, catalogRepo)

	user := &domain.User{ID: 3, MonthlyCategories: []domain.MonthlyCategory{
		totalRow(1, "2025-01-01", 10_000_000),
	}}
	userRepo.AddUser(user)

	month := mustMonth(t, "2025-01")
	updated, err := budgetService.AddSubCategory(context.Background(), user, month, 4, 3_000_000)
	if err != nil {
		t.Fatalf("Expected no error on first allocation, got %v", err)
	}
	updated, err = budgetService.AddSubCategory(context.Background(), updated, month, 4, 500_000)
	if err != nil {
		t.Fatalf("Expected no error on second allocation, got %v", err)
	}

	if got := SubTotalFor(updated, month); got != 3_500_000 {
		t.Errorf("Expected sub total 3500000, got %d", got)
	}
	if got := RemainingFor(updated, month); got != 6_500_000 {
		t.Errorf("Expected remaining 6500000, got %d", got)
	}
}

func TestAddSubCategory_ExceedsRemaining(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	catalogRepo := testutil.NewMockUserCategoryRepository()
	catalogRepo.AddCategory(&domain.UserCategory{ID: 4, Name: "Ăn uống", Limit: 5_000_000})
	budgetService := NewBudgetService(userRepo, catalogRepo)

	user := &domain.User{ID: 3, MonthlyCategories: []domain.MonthlyCategory{
		totalRow(1, "2025-01-01", 10_000_000),
		subRow(2, "2025-01-01", 4, 9_000_000),
	}}
	userRepo.AddUser(user)

	_, err := budgetService.AddSubCategory(context.Background(), user, mustMonth(t, "2025-01"), 4, 2_000_000)
	if !errors.Is(err, domain.ErrBudgetExceeded) {
		t.Fatalf("Expected ErrBudgetExceeded, got %v", err)
	}

	var exceeded *domain.BudgetExceededError
	if !errors.As(err, &exceeded) {
		t.Fatalf("Expected BudgetExceededError, got %T", err)
	}
	if exceeded.Amount != 2_000_000 {
		t.Errorf("Expected amount 2000000, got %d", exceeded.Amount)
	}
	if exceeded.Remaining != 1_000_000 {
		t.Errorf("Expected remaining 1000000, got %d", exceeded.Remaining)
	}
}

func TestAddSubCategory_ExactRemainingAllowed(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	catalogRepo := testutil.NewMockUserCategoryRepository()
	catalogRepo.AddCategory(&domain.UserCategory{ID: 4, Name: "Ăn uống", Limit: 5_000_000})
	budgetService := NewBudgetService(userRepo, catalogRepo)

	user := &domain.User{ID: 3, MonthlyCategories: []domain.MonthlyCategory{
		totalRow(1, "2025-01-01", 10_000_000),
	}}
	userRepo.AddUser(user)

	month := mustMonth(t, "2025-01")
	updated, err := budgetService.AddSubCategory(context.Background(), user, month, 4, 10_000_000)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := RemainingFor(updated, month); got != 0 {
		t.Errorf("Expected remaining 0, got %d", got)
	}
}

func TestAddSubCategory_RejectsTotalCategoryID(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	catalogRepo := testutil.NewMockUserCategoryRepository()
	budgetService := NewBudgetService(userRepo, catalogRepo)

	user := &domain.User{ID: 3, MonthlyCategories: []domain.MonthlyCategory{
		totalRow(1, "2025-01-01", 10_000_000),
	}}
	userRepo.AddUser(user)

	_, err := budgetService.AddSubCategory(context.Background(), user, mustMonth(t, "2025-01"), domain.TotalCategoryID, 1_000_000)
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestAddSubCategory_UnknownCategory(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	catalogRepo := testutil.NewMockUserCategoryRepository()
	budgetService := NewBudgetService(userRepo, catalogRepo)

	user := &domain.User{ID: 3, MonthlyCategories: []domain.MonthlyCategory{
		totalRow(1, "2025-01-01", 10_000_000),
	}}
	userRepo.AddUser(user)

	_, err := budgetService.AddSubCategory(context.Background(), user, mustMonth(t, "2025-01"), 42, 1_000_000)
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestAddSubCategory_IDAllocationSkipsGaps(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	catalogRepo := testutil.NewMockUserCategoryRepository()
	catalogRepo.AddCategory(&domain.UserCategory{ID: 4, Name: "Ăn uống", Limit: 5_000_000})
	budgetService := NewBudgetService(userRepo, catalogRepo)

	user := &domain.User{ID: 3, MonthlyCategories: []domain.MonthlyCategory{
		totalRow(7, "2025-01-01", 10_000_000),
	}}
	userRepo.AddUser(user)

	updated, err := budgetService.AddSubCategory(context.Background(), user, mustMonth(t, "2025-01"), 4, 1_000_000)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	added := updated.MonthlyCategories[len(updated.MonthlyCategories)-1]
	if added.ID != 8 {
		t.Errorf("Expected next id 8, got %d", added.ID)
	}
}

func TestRemainingFor_MonthOnlyComparison(t *testing.T) {
	user := &domain.User{ID: 3, MonthlyCategories: []domain.MonthlyCategory{
		totalRow(1, "2025-01-01", 10_000_000),
		subRow(2, "2025-01-15", 4, 3_000_000),
		totalRow(3, "2025-02-01", 8_000_000),
	}}

	if got := RemainingFor(user, mustMonth(t, "2025-01")); got != 7_000_000 {
		t.Errorf("Expected January remaining 7000000, got %d", got)
	}
	if got := RemainingFor(user, mustMonth(t, "2025-02")); got != 8_000_000 {
		t.Errorf("Expected February remaining 8000000, got %d", got)
	}
	if got := RemainingFor(user, mustMonth(t, "2025-03")); got != 0 {
		t.Errorf("Expected March remaining 0, got %d", got)
	}
}

func TestEnsureCategoryByName_ReturnsExisting(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	catalogRepo := testutil.NewMockUserCategoryRepository()
	catalogRepo.AddCategory(&domain.UserCategory{ID: 4, Name: "Ăn uống", Limit: 5_000_000})
	budgetService := NewBudgetService(userRepo, catalogRepo)

	category, err := budgetService.EnsureCategoryByName(context.Background(), "Ăn uống")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if category.ID != 4 {
		t.Errorf("Expected existing id 4, got %d", category.ID)
	}
	if len(catalogRepo.Categories) != 1 {
		t.Errorf("Expected no new entry, got %d", len(catalogRepo.Categories))
	}
}

func TestEnsureCategoryByName_CreatesWithZeroLimit(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	catalogRepo := testutil.NewMockUserCategoryRepository()
	budgetService := NewBudgetService(userRepo, catalogRepo)

	category, err := budgetService.EnsureCategoryByName(context.Background(), "Coffee")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if category.Name != "Coffee" {
		t.Errorf("Expected name 'Coffee', got %s", category.Name)
	}
	if category.Limit != 0 {
		t.Errorf("Expected limit 0, got %d", category.Limit)
	}
	if category.ID == 0 {
		t.Errorf("Expected a backend-assigned id, got 0")
	}
}

func TestEnsureCategoryByName_EmptyName(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	catalogRepo := testutil.NewMockUserCategoryRepository()
	budgetService := NewBudgetService(userRepo, catalogRepo)

	_, err := budgetService.EnsureCategoryByName(context.Background(), "   ")
	if !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}
}
