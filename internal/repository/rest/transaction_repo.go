package rest

import (
	"context"
	"fmt"

	"github.com/finman-app/finman-backend/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository over the
// transactions collection.
type TransactionRepository struct {
	client *Client
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(client *Client) *TransactionRepository {
	return &TransactionRepository{client: client}
}

// List retrieves the full transaction log
func (r *TransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	var txs []*domain.Transaction
	if err := r.client.get(ctx, "/transactions", &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// Create appends a transaction to the log
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	var created domain.Transaction
	if err := r.client.post(ctx, "/transactions", tx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete removes a transaction by id
func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	return r.client.delete(ctx, fmt.Sprintf("/transactions/%d", id))
}
