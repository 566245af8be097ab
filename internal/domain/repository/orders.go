package repository

import (
	"context"

	"github.com/washpoint/washpoint/internal/domain/model"
)

// OrderRepository describes persistence operations with laundry orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	// ApplyDiscount stamps reward fields onto an already persisted order.
	ApplyDiscount(ctx context.Context, orderID int64, originalTotal, discount, finalTotal float64) error
}
