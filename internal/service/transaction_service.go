package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/finman-app/finman-backend/internal/domain"
	"github.com/finman-app/finman-backend/internal/util"
)

// TransactionService owns the spending log and keeps it consistent with the
// user's total-budget rows: recording a spend decrements the month's total,
// deleting one refunds it. Aside from the explicit set-total operation, this
// service is the only writer of total rows on user-side flows.
type TransactionService struct {
	txRepo   domain.TransactionRepository
	userRepo domain.UserRepository
	pageSize int
	now      func() time.Time
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(txRepo domain.TransactionRepository, userRepo domain.UserRepository, pageSize int) *TransactionService {
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	return &TransactionService{
		txRepo:   txRepo,
		userRepo: userRepo,
		pageSize: pageSize,
		now:      time.Now,
	}
}

// RecordResult is the outcome of recording a transaction. MissingBudget is
// raised when the month had no total row: the transaction is persisted
// anyway, the user record is left unchanged, and the caller warns.
type RecordResult struct {
	Transaction   *domain.Transaction
	User          *domain.User
	MissingBudget bool
}

// Record appends a spending transaction and debits the month's total row.
func (s *TransactionService) Record(ctx context.Context, user *domain.User, month util.YearMonth, categoryName string, amount int64, note string) (*RecordResult, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	categoryName = strings.TrimSpace(categoryName)
	note = strings.TrimSpace(note)
	if categoryName == "" || note == "" {
		return nil, domain.ErrInvalidInput
	}

	hasTotal := hasTotalRow(user, month)
	if hasTotal {
		remaining := RemainingFor(user, month)
		if amount > remaining {
			return nil, &domain.BudgetExceededError{Amount: amount, Remaining: remaining}
		}
	}

	now := s.now()
	tx := &domain.Transaction{
		ID:        now.UnixMilli(),
		UserID:    user.ID,
		Category:  categoryName,
		Budget:    amount,
		Note:      note,
		Month:     month.String(),
		CreatedAt: now.Format(domain.CreatedAtLayout),
	}
	created, err := s.txRepo.Create(ctx, tx)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to append transaction")
		return nil, err
	}

	if !hasTotal {
		log.Warn().Int64("user_id", user.ID).Str("month", month.String()).Msg("Transaction recorded without a monthly budget")
		return &RecordResult{Transaction: created, User: user, MissingBudget: true}, nil
	}

	updated, err := s.debitTotal(ctx, user, month, amount)
	if err != nil {
		// The transaction is already persisted; the total row stays
		// undebited until the client refetches.
		log.Error().Err(err).Int64("user_id", user.ID).Int64("transaction_id", created.ID).Msg("Transaction persisted but budget debit failed")
		return nil, err
	}
	return &RecordResult{Transaction: created, User: updated}, nil
}

// DeleteResult is the outcome of deleting a transaction. MissingBudget is
// raised when the transaction's month no longer has a total row to refund.
type DeleteResult struct {
	User          *domain.User
	MissingBudget bool
}

// Delete removes a transaction and refunds its amount to the total row of
// the transaction's month.
func (s *TransactionService) Delete(ctx context.Context, user *domain.User, txID int64) (*DeleteResult, error) {
	txs, err := s.txRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	var target *domain.Transaction
	for _, tx := range txs {
		if tx.ID == txID && tx.UserID == user.ID {
			target = tx
			break
		}
	}
	if target == nil {
		return nil, domain.ErrNotFound
	}

	if err := s.txRepo.Delete(ctx, txID); err != nil {
		log.Error().Err(err).Int64("transaction_id", txID).Msg("Failed to delete transaction")
		return nil, err
	}

	month, err := util.ParseYearMonth(target.Month)
	if err != nil || !hasTotalRow(user, month) {
		log.Warn().Int64("user_id", user.ID).Str("month", target.Month).Msg("Transaction deleted without a monthly budget to refund")
		return &DeleteResult{User: user, MissingBudget: true}, nil
	}

	updated, err := s.debitTotal(ctx, user, month, -target.Budget)
	if err != nil {
		// The transaction is already deleted; the total row stays
		// unrefunded until the client refetches.
		log.Error().Err(err).Int64("user_id", user.ID).Int64("transaction_id", txID).Msg("Transaction deleted but budget refund failed")
		return nil, err
	}
	return &DeleteResult{User: updated}, nil
}

// ListForMonth pages the user's transactions for a month, optionally
// filtered by a case-insensitive search over category and note and sorted by
// amount. Without a sort order, insertion order is preserved.
func (s *TransactionService) ListForMonth(ctx context.Context, userID int64, month util.YearMonth, filters domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	txs, err := s.txRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filters.Search))
	var matched []*domain.Transaction
	for _, tx := range txs {
		if tx.UserID != userID || !month.SameMonth(tx.Month) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(tx.Category), search) &&
			!strings.Contains(strings.ToLower(tx.Note), search) {
			continue
		}
		matched = append(matched, tx)
	}

	switch filters.Sort {
	case domain.SortBudgetAsc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Budget < matched[j].Budget })
	case domain.SortBudgetDesc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Budget > matched[j].Budget })
	}

	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = s.pageSize
	}
	page := filters.Page
	if page < 1 {
		page = 1
	}

	total := len(matched)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return &domain.PaginatedTransactions{
		Data:       matched[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// RecordAllocation appends the advisory history entry the home screen shows
// when a sub-category is created. The allocation itself is already debited
// from the user's remaining balance, so this entry never touches the user
// record.
func (s *TransactionService) RecordAllocation(ctx context.Context, user *domain.User, month util.YearMonth, categoryName string, amount int64) (*domain.Transaction, error) {
	now := s.now()
	tx := &domain.Transaction{
		ID:        now.UnixMilli(),
		UserID:    user.ID,
		Category:  categoryName,
		Budget:    amount,
		Note:      fmt.Sprintf("Tạo danh mục %q tháng %02d/%04d", categoryName, int(month.Month), month.Year),
		Month:     month.String(),
		CreatedAt: now.Format(domain.CreatedAtLayout),
	}
	return s.txRepo.Create(ctx, tx)
}

// debitTotal adjusts the month's total row by -amount (negative amounts
// refund) and persists the user.
func (s *TransactionService) debitTotal(ctx context.Context, user *domain.User, month util.YearMonth, amount int64) (*domain.User, error) {
	updated := user.Clone()
	for i, mc := range updated.MonthlyCategories {
		if mc.IsTotal() && month.SameMonth(mc.Month) {
			updated.MonthlyCategories[i].Categories.Budget -= amount
			break
		}
	}
	persisted, err := s.userRepo.Replace(ctx, updated)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Str("month", month.String()).Msg("Failed to update total budget row")
		return nil, err
	}
	return persisted, nil
}

func hasTotalRow(user *domain.User, month util.YearMonth) bool {
	for _, mc := range user.MonthlyCategories {
		if mc.IsTotal() && month.SameMonth(mc.Month) {
			return true
		}
	}
	return false
}
