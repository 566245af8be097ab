package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/washpoint/washpoint/internal/adapter/payments"
	domainErrors "github.com/washpoint/washpoint/internal/domain/errors"
	"github.com/washpoint/washpoint/internal/domain/model"
	"github.com/washpoint/washpoint/internal/logger"
	testhelpers "github.com/washpoint/washpoint/internal/test"
)

type orderFixture struct {
	orders       *testhelpers.OrderRepositoryStub
	users        *testhelpers.UserRepositoryStub
	services     *testhelpers.ServiceRepositoryStub
	transactions *testhelpers.TransactionRepositoryStub
	collector    *testhelpers.PaymentClientStub
	rewards      *RewardUseCase
	uc           *OrderUseCase
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders:       &testhelpers.OrderRepositoryStub{},
		users:        testhelpers.NewUserRepositoryStub(),
		services:     testhelpers.NewServiceRepositoryStub(),
		transactions: testhelpers.NewTransactionRepositoryStub(),
		collector:    &testhelpers.PaymentClientStub{},
	}
	f.rewards = NewRewardUseCase(testhelpers.NewRewardRepositoryStub(), f.orders)
	f.uc = NewOrderUseCase(f.orders, f.users, f.services, f.transactions, f.collector, f.rewards, logger.NewWithWriter(io.Discard))
	return f
}

func validInput(serviceID int64) model.PlaceOrderInput {
	return model.PlaceOrderInput{
		Items:   []model.PlaceOrderItem{{ServiceItemID: serviceID, Quantity: 2}},
		Pickup:  model.Location{Address: "12 Main St", Latitude: 3.87, Longitude: 11.52},
		Dropoff: model.Location{Address: "34 Hill Rd", Latitude: 3.85, Longitude: 11.50},
	}
}

func TestOrderPlaceCashDefaultsAndPrices(t *testing.T) {
	f := newOrderFixture()
	item := f.services.Add("Wash & Fold", 500, true)
	actor := &model.User{ID: 7, Role: model.RoleCustomer}

	created, err := f.uc.Place(context.Background(), actor, validInput(item.ID))
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if created.PaymentMethod != model.PaymentMethodCash {
		t.Fatalf("expected cash default, got %s", created.PaymentMethod)
	}
	if created.Total != 1000 {
		t.Fatalf("expected total 1000 for 2 x 500, got %.2f", created.Total)
	}
	if created.CustomerID != 7 || created.PlacedBy != 7 {
		t.Fatalf("customer attribution wrong: %+v", created)
	}
	if len(f.collector.Collected) != 0 {
		t.Fatal("cash orders must not touch the payment collector")
	}
}

func TestOrderPlaceValidationFailures(t *testing.T) {
	f := newOrderFixture()
	item := f.services.Add("Wash & Fold", 500, true)
	actor := &model.User{ID: 7, Role: model.RoleCustomer}

	tests := []struct {
		name    string
		mutate  func(*model.PlaceOrderInput)
		wantErr error
	}{
		{
			name:    "no items",
			mutate:  func(in *model.PlaceOrderInput) { in.Items = nil },
			wantErr: domainErrors.ErrInvalidOrderData,
		},
		{
			name:    "zero quantity",
			mutate:  func(in *model.PlaceOrderInput) { in.Items[0].Quantity = 0 },
			wantErr: domainErrors.ErrInvalidOrderData,
		},
		{
			name:    "missing pickup address",
			mutate:  func(in *model.PlaceOrderInput) { in.Pickup.Address = "  " },
			wantErr: domainErrors.ErrInvalidOrderData,
		},
		{
			name:    "latitude out of range",
			mutate:  func(in *model.PlaceOrderInput) { in.Dropoff.Latitude = 91 },
			wantErr: domainErrors.ErrInvalidCoordinates,
		},
		{
			name: "mobile without phone",
			mutate: func(in *model.PlaceOrderInput) {
				in.PaymentMethod = model.PaymentMethodMobile
				in.PhoneNumber = ""
			},
			wantErr: domainErrors.ErrInvalidOrderData,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput(item.ID)
			tc.mutate(&in)
			if _, err := f.uc.Place(context.Background(), actor, in); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	if len(f.orders.Created) != 0 {
		t.Fatal("validation failures must not create orders")
	}
}

func TestOrderPlaceRejectsUnknownPaymentMethod(t *testing.T) {
	f := newOrderFixture()
	item := f.services.Add("Wash & Fold", 500, true)
	actor := &model.User{ID: 7, Role: model.RoleCustomer}

	for _, method := range []model.PaymentMethod{"CARD", "mobile", "cash"} {
		in := validInput(item.ID)
		in.PaymentMethod = method
		in.PhoneNumber = "677112233"
		if _, err := f.uc.Place(context.Background(), actor, in); !errors.Is(err, domainErrors.ErrInvalidOrderData) {
			t.Fatalf("method %q: expected ErrInvalidOrderData, got %v", method, err)
		}
	}

	if len(f.orders.Created) != 0 {
		t.Fatal("unknown payment method must not create an order")
	}
	if len(f.collector.Collected) != 0 {
		t.Fatal("unknown payment method must not touch the collector")
	}
	if len(f.transactions.Created) != 0 {
		t.Fatal("unknown payment method must not record a transaction")
	}
}

func TestOrderPlaceHonorsChargeWhenDiscountConsumedConcurrently(t *testing.T) {
	rewards := testhelpers.NewRewardRepositoryStub()
	f := newOrderFixture()
	f.rewards = NewRewardUseCase(rewards, f.orders)
	f.uc = NewOrderUseCase(f.orders, f.users, f.services, f.transactions, f.collector, f.rewards, logger.NewWithWriter(io.Discard))
	item := f.services.Add("Wash & Fold", 500, true)
	actor := &model.User{ID: 7, Role: model.RoleCustomer}
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if _, err := f.uc.Place(ctx, actor, validInput(item.ID)); err != nil {
			t.Fatalf("place order %d: %v", i+1, err)
		}
	}

	// Between the charge and the ledger mutation another request for the
	// same customer takes the discount. The collector has already collected
	// the discounted amount, so the order must be priced at what was paid.
	var charged float64
	f.collector.CollectFn = func(ctx context.Context, amount float64, phone, description string) (*payments.Collection, error) {
		charged = amount
		err := rewards.WithLedger(ctx, 7, func(l *model.RewardLedger) error {
			l.IsEligibleForDiscount = false
			l.NextDiscountAmount = 0
			l.CurrentCycle = nil
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &payments.Collection{Reference: "ref-race", Operator: "MTN"}, nil
	}

	in := validInput(item.ID)
	in.PaymentMethod = model.PaymentMethodMobile
	in.PhoneNumber = "677112233"
	created, err := f.uc.Place(ctx, actor, in)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if charged != 0 {
		t.Fatalf("collector must have been asked for the discounted total, got %.2f", charged)
	}
	if created.Total != 0 || created.OriginalTotal != 1000 || created.RewardDiscount != 1000 {
		t.Fatalf("order must match the charged amount: %+v", created)
	}
	if !created.IsRewardOrder {
		t.Fatal("order charged at a discount must be marked as a reward order")
	}
}

func TestOrderPlaceInactiveService(t *testing.T) {
	f := newOrderFixture()
	item := f.services.Add("Dry Cleaning", 1200, false)
	actor := &model.User{ID: 7, Role: model.RoleCustomer}

	_, err := f.uc.Place(context.Background(), actor, validInput(item.ID))
	if !errors.Is(err, domainErrors.ErrInvalidOrderData) {
		t.Fatalf("expected ErrInvalidOrderData for inactive service, got %v", err)
	}
}

func TestOrderPlaceMobileCreatesPendingTransaction(t *testing.T) {
	f := newOrderFixture()
	item := f.services.Add("Wash & Fold", 500, true)
	actor := &model.User{ID: 7, Role: model.RoleCustomer}

	in := validInput(item.ID)
	in.PaymentMethod = model.PaymentMethodMobile
	in.PhoneNumber = "677112233"

	created, err := f.uc.Place(context.Background(), actor, in)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if len(f.collector.Amounts) != 1 || f.collector.Amounts[0] != 1000 {
		t.Fatalf("collector must be asked for the full total, got %v", f.collector.Amounts)
	}
	if len(f.transactions.Created) != 1 {
		t.Fatalf("expected one pending transaction, got %d", len(f.transactions.Created))
	}
	tx := f.transactions.Created[0]
	if tx.Status != model.TransactionStatusPending {
		t.Fatalf("expected pending status, got %s", tx.Status)
	}
	if tx.Reference != "ref-stub" || tx.PhoneNumber != "677112233" {
		t.Fatalf("unexpected transaction %+v", tx)
	}
	if tx.Code == "" {
		t.Fatal("transaction must carry a generated code")
	}
	if got, ok := f.transactions.Links[tx.ID]; !ok || got != created.ID {
		t.Fatalf("transaction not linked to order: %v", f.transactions.Links)
	}
}

func TestOrderPlacePaymentFailureAborts(t *testing.T) {
	f := newOrderFixture()
	item := f.services.Add("Wash & Fold", 500, true)
	f.collector.CollectFn = func(context.Context, float64, string, string) (*payments.Collection, error) {
		return nil, fmt.Errorf("provider unavailable")
	}
	actor := &model.User{ID: 7, Role: model.RoleCustomer}

	in := validInput(item.ID)
	in.PaymentMethod = model.PaymentMethodMobile
	in.PhoneNumber = "677112233"

	_, err := f.uc.Place(context.Background(), actor, in)
	if !errors.Is(err, domainErrors.ErrPaymentFailed) {
		t.Fatalf("expected ErrPaymentFailed, got %v", err)
	}
	if len(f.orders.Created) != 0 {
		t.Fatal("failed payment must not create an order")
	}
	if len(f.transactions.Created) != 0 {
		t.Fatal("failed payment must not record a transaction")
	}
}

func TestOrderPlaceStaffRequiresCustomer(t *testing.T) {
	f := newOrderFixture()
	item := f.services.Add("Wash & Fold", 500, true)
	staff := &model.User{ID: 2, Role: model.RoleReceptionist}

	if _, err := f.uc.Place(context.Background(), staff, validInput(item.ID)); !errors.Is(err, domainErrors.ErrInvalidOrderData) {
		t.Fatalf("staff order without customer must fail, got %v", err)
	}

	in := validInput(item.ID)
	in.CustomerID = 99
	if _, err := f.uc.Place(context.Background(), staff, in); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("unknown customer must fail, got %v", err)
	}

	customer, err := f.users.Create(context.Background(), "alice", "hash", model.RoleCustomer, "")
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	in.CustomerID = customer.ID
	created, err := f.uc.Place(context.Background(), staff, in)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if created.CustomerID != customer.ID || created.PlacedBy != staff.ID {
		t.Fatalf("staff attribution wrong: %+v", created)
	}
}

func TestOrderPlaceTracksReward(t *testing.T) {
	f := newOrderFixture()
	item := f.services.Add("Wash & Fold", 500, true)
	actor := &model.User{ID: 7, Role: model.RoleCustomer}

	created, err := f.uc.Place(context.Background(), actor, validInput(item.ID))
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	status, err := f.rewards.Status(context.Background(), 7)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.CurrentCycleOrderCount != 1 {
		t.Fatalf("order must be tracked against the cycle, got %d", status.CurrentCycleOrderCount)
	}
	if status.CurrentCycleTotal != created.Total {
		t.Fatalf("tracked amount mismatch: %v vs %v", status.CurrentCycleTotal, created.Total)
	}
}

func TestOrderPlaceEleventhOrderGetsDiscount(t *testing.T) {
	f := newOrderFixture()
	item := f.services.Add("Wash & Fold", 500, true)
	actor := &model.User{ID: 7, Role: model.RoleCustomer}
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if _, err := f.uc.Place(ctx, actor, validInput(item.ID)); err != nil {
			t.Fatalf("place order %d: %v", i+1, err)
		}
	}

	in := validInput(item.ID)
	in.PaymentMethod = model.PaymentMethodMobile
	in.PhoneNumber = "677112233"
	created, err := f.uc.Place(ctx, actor, in)
	if err != nil {
		t.Fatalf("place eleventh order: %v", err)
	}

	if !created.IsRewardOrder {
		t.Fatal("eleventh order must carry the discount")
	}
	if created.OriginalTotal != 1000 || created.RewardDiscount != 1000 || created.Total != 0 {
		t.Fatalf("unexpected discount math: %+v", created)
	}
	// All ten cycle orders cost 1000, so the unlocked discount covers the
	// eleventh entirely and the collector is asked for nothing.
	if last := f.collector.Amounts[len(f.collector.Amounts)-1]; last != 0 {
		t.Fatalf("collector must charge the discounted total, got %.2f", last)
	}

	status, err := f.rewards.Status(ctx, 7)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.CompletedCyclesCount != 1 {
		t.Fatalf("expected one completed cycle, got %d", status.CompletedCyclesCount)
	}
	if status.CurrentCycleOrderCount != 1 {
		t.Fatalf("eleventh order must start the next cycle, got %d", status.CurrentCycleOrderCount)
	}
	if status.CurrentCycleTotal != 0 {
		t.Fatalf("next cycle must track the paid amount, got %.2f", status.CurrentCycleTotal)
	}
}

func TestOrderPlaceTrackingFailureDoesNotAbort(t *testing.T) {
	rewards := testhelpers.NewRewardRepositoryStub()
	f := newOrderFixture()
	f.rewards = NewRewardUseCase(rewards, f.orders)
	f.uc = NewOrderUseCase(f.orders, f.users, f.services, f.transactions, f.collector, f.rewards, logger.NewWithWriter(io.Discard))
	item := f.services.Add("Wash & Fold", 500, true)
	actor := &model.User{ID: 7, Role: model.RoleCustomer}

	// A full, unapplied cycle makes tracking fail while the order itself
	// should still be created. Eligibility is consumed first, so prime the
	// ledger as full but not eligible to isolate the tracking path.
	err := rewards.WithLedger(context.Background(), 7, func(l *model.RewardLedger) error {
		for i := 0; i < 10; i++ {
			l.CurrentCycle = append(l.CurrentCycle, model.CycleOrder{OrderID: int64(i + 1), Amount: 1000})
		}
		l.TotalOrdersCount = 10
		return nil
	})
	if err != nil {
		t.Fatalf("seed ledger: %v", err)
	}

	created, err := f.uc.Place(context.Background(), actor, validInput(item.ID))
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("order must be created despite tracking failure")
	}
}

func TestOrderGetAndList(t *testing.T) {
	f := newOrderFixture()
	item := f.services.Add("Wash & Fold", 500, true)
	actor := &model.User{ID: 7, Role: model.RoleCustomer}
	ctx := context.Background()

	created, err := f.uc.Place(ctx, actor, validInput(item.ID))
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	got, err := f.uc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("fetched wrong order %d", got.ID)
	}

	list, err := f.uc.ListByCustomer(ctx, 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one order, got %d", len(list))
	}

	if _, err := f.uc.GetByID(ctx, 999); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
