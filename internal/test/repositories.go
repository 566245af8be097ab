package test

import (
	"context"
	"sync"

	domainErrors "github.com/washpoint/washpoint/internal/domain/errors"
	"github.com/washpoint/washpoint/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.UserRole, phone string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Role: role, Phone: phone}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// AppliedDiscount records an OrderRepository.ApplyDiscount invocation.
type AppliedDiscount struct {
	OrderID       int64
	OriginalTotal float64
	Discount      float64
	FinalTotal    float64
}

// OrderRepositoryStub allows tests to customize order persistence behaviour.
type OrderRepositoryStub struct {
	CreateFn        func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn       func(context.Context, int64) (*model.Order, error)
	ListFn          func(context.Context, int64) ([]model.Order, error)
	ApplyDiscountFn func(context.Context, int64, float64, float64, float64) error

	Created []model.Order
	Applied []AppliedDiscount
	Next    int64
}

// Create tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	created := *order
	created.ID = s.Next
	s.Next++
	s.Created = append(s.Created, created)
	return &created, nil
}

// GetByID returns configured order or not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for i := range s.Created {
		if s.Created[i].ID == id {
			return &s.Created[i], nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByCustomer returns created orders for the customer.
func (s *OrderRepositoryStub) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, customerID)
	}
	var result []model.Order
	for _, o := range s.Created {
		if o.CustomerID == customerID {
			result = append(result, o)
		}
	}
	return result, nil
}

// ApplyDiscount records the discount stamping request.
func (s *OrderRepositoryStub) ApplyDiscount(ctx context.Context, orderID int64, originalTotal, discount, finalTotal float64) error {
	if s.ApplyDiscountFn != nil {
		return s.ApplyDiscountFn(ctx, orderID, originalTotal, discount, finalTotal)
	}
	s.Applied = append(s.Applied, AppliedDiscount{OrderID: orderID, OriginalTotal: originalTotal, Discount: discount, FinalTotal: finalTotal})
	for i := range s.Created {
		if s.Created[i].ID == orderID {
			s.Created[i].OriginalTotal = originalTotal
			s.Created[i].RewardDiscount = discount
			s.Created[i].Total = finalTotal
			s.Created[i].IsRewardOrder = true
		}
	}
	return nil
}

// RewardRepositoryStub keeps ledgers in-memory with the same atomicity
// contract as the real repository: WithLedger serializes per stub.
type RewardRepositoryStub struct {
	Ledgers map[int64]*model.RewardLedger
	GetErr  error
	SaveErr error

	mu sync.Mutex
}

// NewRewardRepositoryStub constructs the stub with an initialized map.
func NewRewardRepositoryStub() *RewardRepositoryStub {
	return &RewardRepositoryStub{Ledgers: make(map[int64]*model.RewardLedger)}
}

// Get loads a ledger or reports not found.
func (s *RewardRepositoryStub) Get(ctx context.Context, customerID int64) (*model.RewardLedger, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ledger, ok := s.Ledgers[customerID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *ledger
	return &copied, nil
}

// WithLedger runs fn under the stub lock and keeps the mutation on success.
func (s *RewardRepositoryStub) WithLedger(ctx context.Context, customerID int64, fn func(*model.RewardLedger) error) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Ledgers == nil {
		s.Ledgers = make(map[int64]*model.RewardLedger)
	}
	ledger, ok := s.Ledgers[customerID]
	if !ok {
		ledger = &model.RewardLedger{CustomerID: customerID}
		s.Ledgers[customerID] = ledger
	}
	return fn(ledger)
}

// TransactionRepositoryStub records transaction persistence calls.
type TransactionRepositoryStub struct {
	CreateFn func(context.Context, *model.Transaction) (*model.Transaction, error)
	BatchFn  func(context.Context, int) ([]model.Transaction, error)

	Created []model.Transaction
	Links   map[int64]int64
	Updates map[int64]model.TransactionStatus
	Next    int64
	Err     error
}

// NewTransactionRepositoryStub constructs the stub with initialized maps.
func NewTransactionRepositoryStub() *TransactionRepositoryStub {
	return &TransactionRepositoryStub{
		Links:   make(map[int64]int64),
		Updates: make(map[int64]model.TransactionStatus),
		Next:    1,
	}
}

// Create stores the transaction and assigns an identifier.
func (s *TransactionRepositoryStub) Create(ctx context.Context, tx *model.Transaction) (*model.Transaction, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, tx)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Next == 0 {
		s.Next = 1
	}
	created := *tx
	created.ID = s.Next
	s.Next++
	s.Created = append(s.Created, created)
	return &created, nil
}

// LinkOrder records the transaction/order association.
func (s *TransactionRepositoryStub) LinkOrder(ctx context.Context, transactionID, orderID int64) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Links == nil {
		s.Links = make(map[int64]int64)
	}
	s.Links[transactionID] = orderID
	return nil
}

// ListByCustomer returns stored transactions for the customer.
func (s *TransactionRepositoryStub) ListByCustomer(ctx context.Context, customerID int64) ([]model.Transaction, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Transaction
	for _, tx := range s.Created {
		if tx.CustomerID == customerID {
			result = append(result, tx)
		}
	}
	return result, nil
}

// SelectBatchForPolling returns pending transactions up to the limit.
func (s *TransactionRepositoryStub) SelectBatchForPolling(ctx context.Context, limit int) ([]model.Transaction, error) {
	if s.BatchFn != nil {
		return s.BatchFn(ctx, limit)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Transaction
	for _, tx := range s.Created {
		if tx.Status == model.TransactionStatusPending && len(result) < limit {
			result = append(result, tx)
		}
	}
	return result, nil
}

// UpdateStatus records the status change.
func (s *TransactionRepositoryStub) UpdateStatus(ctx context.Context, transactionID int64, status model.TransactionStatus) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Updates == nil {
		s.Updates = make(map[int64]model.TransactionStatus)
	}
	s.Updates[transactionID] = status
	return nil
}

// ServiceRepositoryStub keeps the catalog in-memory.
type ServiceRepositoryStub struct {
	Items map[int64]*model.ServiceItem
	Next  int64
	Err   error
}

// NewServiceRepositoryStub constructs the stub with an initialized map.
func NewServiceRepositoryStub() *ServiceRepositoryStub {
	return &ServiceRepositoryStub{Items: make(map[int64]*model.ServiceItem), Next: 1}
}

// Add seeds a catalog item and returns it.
func (s *ServiceRepositoryStub) Add(name string, price float64, active bool) *model.ServiceItem {
	item := &model.ServiceItem{ID: s.Next, Name: name, Unit: "kg", Price: price, Active: active}
	s.Items[item.ID] = item
	s.Next++
	return item
}

// Create stores a new catalog item.
func (s *ServiceRepositoryStub) Create(ctx context.Context, item *model.ServiceItem) (*model.ServiceItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Items == nil {
		s.Items = make(map[int64]*model.ServiceItem)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	created := *item
	created.ID = s.Next
	s.Next++
	s.Items[created.ID] = &created
	return &created, nil
}

// Update replaces a stored item.
func (s *ServiceRepositoryStub) Update(ctx context.Context, item *model.ServiceItem) (*model.ServiceItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.Items[item.ID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	updated := *item
	s.Items[item.ID] = &updated
	return &updated, nil
}

// GetByID fetches a stored item or reports not found.
func (s *ServiceRepositoryStub) GetByID(ctx context.Context, id int64) (*model.ServiceItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if item, ok := s.Items[id]; ok {
		return item, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns stored items, optionally filtering inactive ones.
func (s *ServiceRepositoryStub) List(ctx context.Context, activeOnly bool) ([]model.ServiceItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.ServiceItem
	for _, item := range s.Items {
		if activeOnly && !item.Active {
			continue
		}
		result = append(result, *item)
	}
	return result, nil
}
