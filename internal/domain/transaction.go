package domain

import "context"

// Transaction is one entry in a user's spending log. Category holds the
// category name, not its id: the log is what users search and filter on,
// while the budget rows carry the ids that drive accounting.
type Transaction struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Category  string `json:"category"`
	Budget    int64  `json:"budget"`
	Note      string `json:"note"`
	Month     string `json:"month"`
	CreatedAt string `json:"createdAt"`
}

// CreatedAtLayout is the wire format of Transaction.CreatedAt.
const CreatedAtLayout = "2006-01-02 15:04:05"

type SortOrder string

const (
	SortNone       SortOrder = ""
	SortBudgetAsc  SortOrder = "asc"
	SortBudgetDesc SortOrder = "desc"
)

// TransactionFilters narrows and pages a month's transaction list.
type TransactionFilters struct {
	Search   string
	Sort     SortOrder
	Page     int
	PageSize int
}

const DefaultPageSize = 5

type PaginatedTransactions struct {
	Data       []*Transaction `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalItems int            `json:"totalItems"`
	TotalPages int            `json:"totalPages"`
}

type TransactionRepository interface {
	List(ctx context.Context) ([]*Transaction, error)
	Create(ctx context.Context, tx *Transaction) (*Transaction, error)
	Delete(ctx context.Context, id int64) error
}
