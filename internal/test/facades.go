package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/washpoint/washpoint/internal/adapter/payments"
	"github.com/washpoint/washpoint/internal/domain/model"
)

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (int64, error)
	UserFn         func(context.Context, int64) (*model.User, error)
}

// Register delegates to the configured function or returns a fixed token.
func (s AuthFacadeStub) Register(ctx context.Context, login, password, phone string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password, phone)
	}
	return "token", nil
}

// Authenticate delegates to the configured function or returns a fixed token.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken resolves a token to user ID 1 unless configured otherwise.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// User returns the configured user or a default customer.
func (s AuthFacadeStub) User(ctx context.Context, id int64) (*model.User, error) {
	if s.UserFn != nil {
		return s.UserFn(ctx, id)
	}
	return &model.User{ID: id, Login: "customer", Role: model.RoleCustomer}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn  func(context.Context, *model.User, model.PlaceOrderInput) (*model.Order, error)
	OrdersFn func(context.Context, int64) ([]model.Order, error)
	OrderFn  func(context.Context, int64) (*model.Order, error)
}

// PlaceOrder delegates to the configured function or echoes a created order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, actor *model.User, in model.PlaceOrderInput) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, actor, in)
	}
	return &model.Order{ID: 1, CustomerID: actor.ID, Status: model.OrderStatusPending, Total: 1000}, nil
}

// Orders returns predefined orders for the customer.
func (s OrderFacadeStub) Orders(ctx context.Context, customerID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, customerID)
	}
	return []model.Order{{ID: 1, CustomerID: customerID}}, nil
}

// Order returns a single predefined order.
func (s OrderFacadeStub) Order(ctx context.Context, id int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.Order{ID: id, CustomerID: 1}, nil
}

// RewardFacadeStub simulates reward queries.
type RewardFacadeStub struct {
	StatusFn      func(context.Context, int64) (*model.RewardStatus, error)
	HistoryFn     func(context.Context, int64) (*model.RewardHistory, error)
	EligibilityFn func(context.Context, int64) (*model.EligibilityResult, error)
}

// RewardStatus returns the configured status or a zero-valued default.
func (s RewardFacadeStub) RewardStatus(ctx context.Context, customerID int64) (*model.RewardStatus, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, customerID)
	}
	return &model.RewardStatus{CustomerID: customerID, OrdersUntilDiscount: model.CycleSize}, nil
}

// RewardHistory returns the configured history or an empty one.
func (s RewardFacadeStub) RewardHistory(ctx context.Context, customerID int64) (*model.RewardHistory, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, customerID)
	}
	return &model.RewardHistory{CustomerID: customerID, CompletedCycles: []model.CompletedCycle{}, CurrentCycle: []model.CycleOrder{}}, nil
}

// RewardEligibility returns the configured eligibility result.
func (s RewardFacadeStub) RewardEligibility(ctx context.Context, customerID int64) (*model.EligibilityResult, error) {
	if s.EligibilityFn != nil {
		return s.EligibilityFn(ctx, customerID)
	}
	return &model.EligibilityResult{Message: "No orders tracked yet."}, nil
}

// CatalogFacadeStub simulates service catalog operations.
type CatalogFacadeStub struct {
	ListFn   func(context.Context, bool) ([]model.ServiceItem, error)
	CreateFn func(context.Context, string, string, float64) (*model.ServiceItem, error)
	UpdateFn func(context.Context, int64, string, string, float64, bool) (*model.ServiceItem, error)
}

// Services returns catalog entries.
func (s CatalogFacadeStub) Services(ctx context.Context, activeOnly bool) ([]model.ServiceItem, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, activeOnly)
	}
	return []model.ServiceItem{{ID: 1, Name: "Wash & Fold", Unit: "kg", Price: 500, Active: true}}, nil
}

// CreateService stores a catalog entry.
func (s CatalogFacadeStub) CreateService(ctx context.Context, name, unit string, price float64) (*model.ServiceItem, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, name, unit, price)
	}
	return &model.ServiceItem{ID: 1, Name: name, Unit: unit, Price: price, Active: true}, nil
}

// UpdateService replaces a catalog entry.
func (s CatalogFacadeStub) UpdateService(ctx context.Context, id int64, name, unit string, price float64, active bool) (*model.ServiceItem, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, name, unit, price, active)
	}
	return &model.ServiceItem{ID: id, Name: name, Unit: unit, Price: price, Active: active}, nil
}

// TransactionFacadeStub simulates payment transaction listing.
type TransactionFacadeStub struct {
	TransactionsFn func(context.Context, int64) ([]model.Transaction, error)
}

// Transactions returns the configured payment history.
func (s TransactionFacadeStub) Transactions(ctx context.Context, customerID int64) ([]model.Transaction, error) {
	if s.TransactionsFn != nil {
		return s.TransactionsFn(ctx, customerID)
	}
	return []model.Transaction{{ID: 1, CustomerID: customerID, Status: model.TransactionStatusPending, CreatedAt: time.Unix(0, 0)}}, nil
}

// LaundryFacadeStub aggregates the facade stubs for router and handler tests.
type LaundryFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	RewardFacadeStub
	CatalogFacadeStub
	TransactionFacadeStub
}

// TransactionUpdateCall stores information about UpdateTransactionStatus invocations.
type TransactionUpdateCall struct {
	TransactionID int64
	Status        model.TransactionStatus
}

// PollerFacadeStub mimics poller interactions with the laundry facade.
type PollerFacadeStub struct {
	Batches  [][]model.Transaction
	BatchFn  func(context.Context, int) ([]model.Transaction, error)
	CheckFn  func(context.Context, string) (*payments.PaymentStatus, error)
	UpdateFn func(context.Context, int64, model.TransactionStatus) error
	Updates  []TransactionUpdateCall

	mu             sync.Mutex
	batchCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *PollerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *PollerFacadeStub) Unlock() { s.mu.Unlock() }

// TransactionsForPolling returns batches from the configured queue.
func (s *PollerFacadeStub) TransactionsForPolling(ctx context.Context, limit int) ([]model.Transaction, error) {
	if s.BatchFn != nil {
		return s.BatchFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.batchCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// CheckPayment returns configured payment status or a successful default.
func (s *PollerFacadeStub) CheckPayment(ctx context.Context, reference string) (*payments.PaymentStatus, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, reference)
	}
	return &payments.PaymentStatus{Reference: reference, Status: model.TransactionStatusSuccessful}, nil
}

// UpdateTransactionStatus records update requests.
func (s *PollerFacadeStub) UpdateTransactionStatus(ctx context.Context, transactionID int64, status model.TransactionStatus) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, transactionID, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Updates = append(s.Updates, TransactionUpdateCall{TransactionID: transactionID, Status: status})
	return nil
}

// PaymentClientStub implements the collector client for tests.
type PaymentClientStub struct {
	CollectFn func(context.Context, float64, string, string) (*payments.Collection, error)
	StatusFn  func(context.Context, string) (*payments.PaymentStatus, error)

	Collected []payments.Collection
	Amounts   []float64
}

// Collect returns a fixed collection or the configured response.
func (s *PaymentClientStub) Collect(ctx context.Context, amount float64, phoneNumber, description string) (*payments.Collection, error) {
	if s.CollectFn != nil {
		return s.CollectFn(ctx, amount, phoneNumber, description)
	}
	collection := payments.Collection{Reference: "ref-stub", Operator: "MTN", USSDCode: "*126#"}
	s.Collected = append(s.Collected, collection)
	s.Amounts = append(s.Amounts, amount)
	return &collection, nil
}

// CheckStatus returns a successful status unless configured otherwise.
func (s *PaymentClientStub) CheckStatus(ctx context.Context, reference string) (*payments.PaymentStatus, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, reference)
	}
	return &payments.PaymentStatus{Reference: reference, Status: model.TransactionStatusSuccessful}, nil
}
