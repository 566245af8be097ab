package app

import (
	"context"

	"github.com/washpoint/washpoint/internal/adapter/payments"
	"github.com/washpoint/washpoint/internal/domain/model"
	"github.com/washpoint/washpoint/internal/domain/repository"
	"github.com/washpoint/washpoint/internal/usecase"
)

// LaundryFacade is the single application surface used by the HTTP layer
// and the payment poller.
type LaundryFacade struct {
	auth         *usecase.AuthUseCase
	orders       *usecase.OrderUseCase
	rewards      *usecase.RewardUseCase
	catalog      *usecase.CatalogUseCase
	transactions repository.TransactionRepository
	collector    payments.Client
}

// NewLaundryFacade wires the use cases behind one facade.
func NewLaundryFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	rewards *usecase.RewardUseCase,
	catalog *usecase.CatalogUseCase,
	transactions repository.TransactionRepository,
	collector payments.Client,
) *LaundryFacade {
	return &LaundryFacade{
		auth:         auth,
		orders:       orders,
		rewards:      rewards,
		catalog:      catalog,
		transactions: transactions,
		collector:    collector,
	}
}

func (f *LaundryFacade) Register(ctx context.Context, login, password, phone string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, phone)
	return token, err
}

func (f *LaundryFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *LaundryFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *LaundryFacade) User(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *LaundryFacade) PlaceOrder(ctx context.Context, actor *model.User, in model.PlaceOrderInput) (*model.Order, error) {
	return f.orders.Place(ctx, actor, in)
}

func (f *LaundryFacade) Orders(ctx context.Context, customerID int64) ([]model.Order, error) {
	return f.orders.ListByCustomer(ctx, customerID)
}

func (f *LaundryFacade) Order(ctx context.Context, id int64) (*model.Order, error) {
	return f.orders.GetByID(ctx, id)
}

func (f *LaundryFacade) RewardStatus(ctx context.Context, customerID int64) (*model.RewardStatus, error) {
	return f.rewards.Status(ctx, customerID)
}

func (f *LaundryFacade) RewardHistory(ctx context.Context, customerID int64) (*model.RewardHistory, error) {
	return f.rewards.History(ctx, customerID)
}

func (f *LaundryFacade) RewardEligibility(ctx context.Context, customerID int64) (*model.EligibilityResult, error) {
	return f.rewards.CheckEligibility(ctx, customerID)
}

func (f *LaundryFacade) Services(ctx context.Context, activeOnly bool) ([]model.ServiceItem, error) {
	return f.catalog.List(ctx, activeOnly)
}

func (f *LaundryFacade) CreateService(ctx context.Context, name, unit string, price float64) (*model.ServiceItem, error) {
	return f.catalog.Create(ctx, name, unit, price)
}

func (f *LaundryFacade) UpdateService(ctx context.Context, id int64, name, unit string, price float64, active bool) (*model.ServiceItem, error) {
	return f.catalog.Update(ctx, id, name, unit, price, active)
}

func (f *LaundryFacade) Transactions(ctx context.Context, customerID int64) ([]model.Transaction, error) {
	return f.transactions.ListByCustomer(ctx, customerID)
}

func (f *LaundryFacade) TransactionsForPolling(ctx context.Context, limit int) ([]model.Transaction, error) {
	return f.transactions.SelectBatchForPolling(ctx, limit)
}

func (f *LaundryFacade) CheckPayment(ctx context.Context, reference string) (*payments.PaymentStatus, error) {
	return f.collector.CheckStatus(ctx, reference)
}

func (f *LaundryFacade) UpdateTransactionStatus(ctx context.Context, transactionID int64, status model.TransactionStatus) error {
	return f.transactions.UpdateStatus(ctx, transactionID, status)
}
