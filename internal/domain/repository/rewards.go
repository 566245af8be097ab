package repository

import (
	"context"

	"github.com/washpoint/washpoint/internal/domain/model"
)

// RewardRepository provides atomic access to per-customer reward ledgers.
type RewardRepository interface {
	// Get loads the full ledger aggregate or returns ErrNotFound.
	Get(ctx context.Context, customerID int64) (*model.RewardLedger, error)
	// WithLedger runs fn against the customer's ledger (created empty when
	// missing) under per-customer mutual exclusion and persists the mutated
	// aggregate when fn returns nil.
	WithLedger(ctx context.Context, customerID int64, fn func(*model.RewardLedger) error) error
}
