package repository

import (
	"context"

	"github.com/washpoint/washpoint/internal/domain/model"
)

// TransactionRepository describes persistence of payment transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) (*model.Transaction, error)
	LinkOrder(ctx context.Context, transactionID, orderID int64) error
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Transaction, error)
	SelectBatchForPolling(ctx context.Context, limit int) ([]model.Transaction, error)
	UpdateStatus(ctx context.Context, transactionID int64, status model.TransactionStatus) error
}
