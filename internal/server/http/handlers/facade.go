package handlers

import (
	"context"

	"github.com/washpoint/washpoint/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password, phone string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
	User(ctx context.Context, id int64) (*model.User, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, actor *model.User, in model.PlaceOrderInput) (*model.Order, error)
	Orders(ctx context.Context, customerID int64) ([]model.Order, error)
	Order(ctx context.Context, id int64) (*model.Order, error)
}

// RewardFacade provides reward ledger queries.
type RewardFacade interface {
	RewardStatus(ctx context.Context, customerID int64) (*model.RewardStatus, error)
	RewardHistory(ctx context.Context, customerID int64) (*model.RewardHistory, error)
	RewardEligibility(ctx context.Context, customerID int64) (*model.EligibilityResult, error)
}

// CatalogFacade provides service catalog operations.
type CatalogFacade interface {
	Services(ctx context.Context, activeOnly bool) ([]model.ServiceItem, error)
	CreateService(ctx context.Context, name, unit string, price float64) (*model.ServiceItem, error)
	UpdateService(ctx context.Context, id int64, name, unit string, price float64, active bool) (*model.ServiceItem, error)
}

// TransactionFacade provides payment transaction queries.
type TransactionFacade interface {
	Transactions(ctx context.Context, customerID int64) ([]model.Transaction, error)
}

// LaundryFacade aggregates the full set of operations used across handlers.
type LaundryFacade interface {
	AuthFacade
	OrderFacade
	RewardFacade
	CatalogFacade
	TransactionFacade
}
