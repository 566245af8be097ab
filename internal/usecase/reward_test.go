package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	domainErrors "github.com/washpoint/washpoint/internal/domain/errors"
	"github.com/washpoint/washpoint/internal/domain/model"
	testhelpers "github.com/washpoint/washpoint/internal/test"
)

func trackOrders(t *testing.T, uc *RewardUseCase, customerID int64, amounts []float64) {
	t.Helper()
	ctx := context.Background()
	for i, amount := range amounts {
		if _, _, err := uc.TrackOrder(ctx, customerID, int64(i+1), amount); err != nil {
			t.Fatalf("track order %d: %v", i+1, err)
		}
	}
}

func TestRewardTrackOrderProgress(t *testing.T) {
	rewards := testhelpers.NewRewardRepositoryStub()
	uc := NewRewardUseCase(rewards, &testhelpers.OrderRepositoryStub{})
	ctx := context.Background()

	status, message, err := uc.TrackOrder(ctx, 7, 101, 1500)
	if err != nil {
		t.Fatalf("track order returned error: %v", err)
	}
	if status.CurrentCycleOrderCount != 1 {
		t.Fatalf("expected 1 order in cycle, got %d", status.CurrentCycleOrderCount)
	}
	if status.OrdersUntilDiscount != 9 {
		t.Fatalf("expected 9 orders until discount, got %d", status.OrdersUntilDiscount)
	}
	if status.IsEligibleForDiscount {
		t.Fatal("customer must not be eligible after one order")
	}
	if message != "Order tracked. 1/10 orders in current cycle." {
		t.Fatalf("unexpected message %q", message)
	}
}

func TestRewardTrackOrderNegativeAmount(t *testing.T) {
	rewards := testhelpers.NewRewardRepositoryStub()
	uc := NewRewardUseCase(rewards, &testhelpers.OrderRepositoryStub{})

	_, _, err := uc.TrackOrder(context.Background(), 7, 101, -50)
	if !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := rewards.Get(context.Background(), 7); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("rejected order must not create a ledger, got %v", err)
	}
}

func TestRewardCycleCompletionUnlocksAverageDiscount(t *testing.T) {
	rewards := testhelpers.NewRewardRepositoryStub()
	uc := NewRewardUseCase(rewards, &testhelpers.OrderRepositoryStub{})
	amounts := []float64{1000, 1500, 2000, 1200, 1800, 2500, 1300, 1700, 2200, 1600}

	ctx := context.Background()
	for i, amount := range amounts[:9] {
		status, _, err := uc.TrackOrder(ctx, 7, int64(i+1), amount)
		if err != nil {
			t.Fatalf("track order %d: %v", i+1, err)
		}
		if status.IsEligibleForDiscount {
			t.Fatalf("eligibility unlocked early at order %d", i+1)
		}
	}

	status, message, err := uc.TrackOrder(ctx, 7, 10, amounts[9])
	if err != nil {
		t.Fatalf("track tenth order: %v", err)
	}
	if !status.IsEligibleForDiscount {
		t.Fatal("tenth order must unlock the discount")
	}
	if status.NextDiscountAmount != 1680 {
		t.Fatalf("expected discount 1680.00, got %.2f", status.NextDiscountAmount)
	}
	if status.CurrentCycleOrderCount != 10 {
		t.Fatal("cycle must stay intact until the discount is applied")
	}
	if !strings.Contains(message, "1680.00") {
		t.Fatalf("completion message should carry the amount, got %q", message)
	}
}

func TestRewardDiscountRoundsHalfUp(t *testing.T) {
	rewards := testhelpers.NewRewardRepositoryStub()
	uc := NewRewardUseCase(rewards, &testhelpers.OrderRepositoryStub{})

	// Nine round orders plus one fractional one: total 1234.55, average 123.455.
	amounts := []float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 334.55}
	trackOrders(t, uc, 7, amounts)

	status, err := uc.Status(context.Background(), 7)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.NextDiscountAmount != 123.46 {
		t.Fatalf("expected half-up rounding to 123.46, got %v", status.NextDiscountAmount)
	}
}

func TestRewardTrackOrderFullCycleRejected(t *testing.T) {
	rewards := testhelpers.NewRewardRepositoryStub()
	uc := NewRewardUseCase(rewards, &testhelpers.OrderRepositoryStub{})
	trackOrders(t, uc, 7, []float64{1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000})

	if _, _, err := uc.TrackOrder(context.Background(), 7, 11, 500); err == nil {
		t.Fatal("tracking into a full cycle must fail")
	}

	ledger, err := rewards.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("get ledger: %v", err)
	}
	if len(ledger.CurrentCycle) != model.CycleSize {
		t.Fatalf("cycle grew past %d orders: %d", model.CycleSize, len(ledger.CurrentCycle))
	}
}

func TestRewardApplyDiscountConsumesCycle(t *testing.T) {
	rewards := testhelpers.NewRewardRepositoryStub()
	orders := &testhelpers.OrderRepositoryStub{}
	uc := NewRewardUseCase(rewards, orders)
	amounts := []float64{1000, 1500, 2000, 1200, 1800, 2500, 1300, 1700, 2200, 1600}
	trackOrders(t, uc, 7, amounts)

	ctx := context.Background()
	result, err := uc.ApplyDiscount(ctx, 7, 11, 2000)
	if err != nil {
		t.Fatalf("apply discount: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected successful apply, got %q", result.Message)
	}
	if result.DiscountApplied != 1680 {
		t.Fatalf("expected discount 1680, got %.2f", result.DiscountApplied)
	}
	if result.FinalTotal != 320 {
		t.Fatalf("expected final total 320, got %.2f", result.FinalTotal)
	}

	if len(orders.Applied) != 1 {
		t.Fatalf("expected one discount stamped onto an order, got %d", len(orders.Applied))
	}
	stamped := orders.Applied[0]
	if stamped.OrderID != 11 || stamped.Discount != 1680 || stamped.FinalTotal != 320 {
		t.Fatalf("unexpected stamp %+v", stamped)
	}

	ledger, err := rewards.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get ledger: %v", err)
	}
	if len(ledger.CurrentCycle) != 0 {
		t.Fatal("current cycle must be cleared after apply")
	}
	if ledger.IsEligibleForDiscount || ledger.NextDiscountAmount != 0 {
		t.Fatal("eligibility must be reset after apply")
	}
	if ledger.TotalRewardsEarned != 1680 {
		t.Fatalf("expected total rewards 1680, got %.2f", ledger.TotalRewardsEarned)
	}
	if len(ledger.CompletedCycles) != 1 {
		t.Fatalf("expected one completed cycle, got %d", len(ledger.CompletedCycles))
	}
	cycle := ledger.CompletedCycles[0]
	if cycle.TotalAmount != 16800 || cycle.AverageAmount != 1680 || cycle.DiscountOrderID != 11 {
		t.Fatalf("unexpected completed cycle %+v", cycle)
	}
	if len(cycle.OrderIDs) != model.CycleSize {
		t.Fatalf("completed cycle must record %d orders, got %d", model.CycleSize, len(cycle.OrderIDs))
	}
	for i, id := range cycle.OrderIDs {
		if id != int64(i+1) {
			t.Fatalf("order IDs must preserve tracking sequence, got %v", cycle.OrderIDs)
		}
	}
}

func TestRewardApplyDiscountTwiceRejected(t *testing.T) {
	rewards := testhelpers.NewRewardRepositoryStub()
	orders := &testhelpers.OrderRepositoryStub{}
	uc := NewRewardUseCase(rewards, orders)
	trackOrders(t, uc, 7, []float64{1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000})

	ctx := context.Background()
	first, err := uc.ApplyDiscount(ctx, 7, 11, 1500)
	if err != nil || !first.Success {
		t.Fatalf("first apply failed: %v %+v", err, first)
	}

	second, err := uc.ApplyDiscount(ctx, 7, 12, 1500)
	if err != nil {
		t.Fatalf("second apply errored: %v", err)
	}
	if second.Success {
		t.Fatal("second apply must be a structured rejection")
	}
	if second.FinalTotal != 1500 || second.DiscountApplied != 0 {
		t.Fatalf("rejection must leave totals untouched, got %+v", second)
	}

	ledger, err := rewards.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get ledger: %v", err)
	}
	if ledger.TotalRewardsEarned != 1000 || len(ledger.CompletedCycles) != 1 {
		t.Fatalf("second apply mutated historical totals: %+v", ledger)
	}
	if len(orders.Applied) != 1 {
		t.Fatalf("second apply must not stamp another order, got %d stamps", len(orders.Applied))
	}
}

func TestRewardApplyDiscountFloorsAtZero(t *testing.T) {
	rewards := testhelpers.NewRewardRepositoryStub()
	uc := NewRewardUseCase(rewards, &testhelpers.OrderRepositoryStub{})
	trackOrders(t, uc, 7, []float64{2000, 2000, 2000, 2000, 2000, 2000, 2000, 2000, 2000, 2000})

	result, err := uc.ApplyDiscount(context.Background(), 7, 11, 1000)
	if err != nil {
		t.Fatalf("apply discount: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected successful apply, got %q", result.Message)
	}
	if result.FinalTotal != 0 {
		t.Fatalf("final total must not go negative, got %.2f", result.FinalTotal)
	}
	if result.DiscountApplied != 2000 {
		t.Fatalf("full discount is still consumed, got %.2f", result.DiscountApplied)
	}
}

func TestRewardApplyDiscountUnknownCustomer(t *testing.T) {
	rewards := testhelpers.NewRewardRepositoryStub()
	orders := &testhelpers.OrderRepositoryStub{}
	uc := NewRewardUseCase(rewards, orders)

	result, err := uc.ApplyDiscount(context.Background(), 42, 1, 800)
	if err != nil {
		t.Fatalf("apply discount: %v", err)
	}
	if result.Success {
		t.Fatal("unknown customer must be rejected")
	}
	if result.FinalTotal != 800 {
		t.Fatalf("rejection must echo the original total, got %.2f", result.FinalTotal)
	}
	if len(orders.Applied) != 0 {
		t.Fatal("rejection must not touch any order")
	}
}

func TestRewardApplyDiscountNotYetEligible(t *testing.T) {
	rewards := testhelpers.NewRewardRepositoryStub()
	uc := NewRewardUseCase(rewards, &testhelpers.OrderRepositoryStub{})
	trackOrders(t, uc, 7, []float64{1000, 1200, 900})

	result, err := uc.ApplyDiscount(context.Background(), 7, 4, 500)
	if err != nil {
		t.Fatalf("apply discount: %v", err)
	}
	if result.Success {
		t.Fatal("partial cycle must not yield a discount")
	}

	ledger, err := rewards.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("get ledger: %v", err)
	}
	if len(ledger.CurrentCycle) != 3 {
		t.Fatalf("rejected apply must not clear the cycle, got %d entries", len(ledger.CurrentCycle))
	}
}

func TestRewardApplyDiscountStampFailure(t *testing.T) {
	rewards := testhelpers.NewRewardRepositoryStub()
	orders := &testhelpers.OrderRepositoryStub{
		ApplyDiscountFn: func(context.Context, int64, float64, float64, float64) error {
			return fmt.Errorf("connection reset")
		},
	}
	uc := NewRewardUseCase(rewards, orders)
	trackOrders(t, uc, 7, []float64{1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000})

	if _, err := uc.ApplyDiscount(context.Background(), 7, 11, 1500); err == nil {
		t.Fatal("order stamp failure must surface")
	}
}

func TestRewardCheckEligibilityDoesNotMutate(t *testing.T) {
	rewards := testhelpers.NewRewardRepositoryStub()
	uc := NewRewardUseCase(rewards, &testhelpers.OrderRepositoryStub{})
	trackOrders(t, uc, 7, []float64{1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		result, err := uc.CheckEligibility(ctx, 7)
		if err != nil {
			t.Fatalf("check eligibility: %v", err)
		}
		if !result.IsEligible || result.DiscountAmount != 1000 {
			t.Fatalf("expected stable eligibility, got %+v", result)
		}
	}

	ledger, err := rewards.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get ledger: %v", err)
	}
	if !ledger.IsEligibleForDiscount || len(ledger.CurrentCycle) != model.CycleSize {
		t.Fatal("eligibility check must not consume the cycle")
	}
}

func TestRewardCheckEligibilityUnknownCustomer(t *testing.T) {
	uc := NewRewardUseCase(testhelpers.NewRewardRepositoryStub(), &testhelpers.OrderRepositoryStub{})

	result, err := uc.CheckEligibility(context.Background(), 42)
	if err != nil {
		t.Fatalf("check eligibility: %v", err)
	}
	if result.IsEligible {
		t.Fatal("unknown customer must not be eligible")
	}
	if result.Message != "No orders tracked yet." {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

func TestRewardStatusUnknownCustomer(t *testing.T) {
	uc := NewRewardUseCase(testhelpers.NewRewardRepositoryStub(), &testhelpers.OrderRepositoryStub{})

	status, err := uc.Status(context.Background(), 42)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.CustomerID != 42 {
		t.Fatalf("status must echo customer ID, got %d", status.CustomerID)
	}
	if status.CurrentCycleOrderCount != 0 || status.OrdersUntilDiscount != model.CycleSize {
		t.Fatalf("expected zero-valued status, got %+v", status)
	}
}

func TestRewardHistoryAcrossCycles(t *testing.T) {
	rewards := testhelpers.NewRewardRepositoryStub()
	uc := NewRewardUseCase(rewards, &testhelpers.OrderRepositoryStub{})
	ctx := context.Background()

	trackOrders(t, uc, 7, []float64{1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000})
	if _, err := uc.ApplyDiscount(ctx, 7, 11, 1200); err != nil {
		t.Fatalf("apply discount: %v", err)
	}
	for i := 0; i < 4; i++ {
		if _, _, err := uc.TrackOrder(ctx, 7, int64(20+i), 800); err != nil {
			t.Fatalf("track order after apply: %v", err)
		}
	}

	history, err := uc.History(ctx, 7)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history.CompletedCycles) != 1 {
		t.Fatalf("expected one completed cycle, got %d", len(history.CompletedCycles))
	}
	if len(history.CurrentCycle) != 4 {
		t.Fatalf("expected 4 orders in the new cycle, got %d", len(history.CurrentCycle))
	}
	if history.TotalOrdersCount != 14 {
		t.Fatalf("lifetime order count must survive apply, got %d", history.TotalOrdersCount)
	}
	if history.TotalRewardsEarned != 1000 {
		t.Fatalf("expected earned rewards 1000, got %.2f", history.TotalRewardsEarned)
	}
}

func TestRewardHistoryUnknownCustomer(t *testing.T) {
	uc := NewRewardUseCase(testhelpers.NewRewardRepositoryStub(), &testhelpers.OrderRepositoryStub{})

	history, err := uc.History(context.Background(), 42)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if history.CompletedCycles == nil || history.CurrentCycle == nil {
		t.Fatal("history slices must be non-nil for serialization")
	}
	if len(history.CompletedCycles) != 0 || len(history.CurrentCycle) != 0 {
		t.Fatalf("expected empty history, got %+v", history)
	}
}

func TestRewardUnlockDiscountPanicsOnPartialCycle(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on partial cycle")
		}
	}()
	unlockDiscount(&model.RewardLedger{
		CustomerID:   7,
		CurrentCycle: []model.CycleOrder{{OrderID: 1, Amount: 100}},
	})
}
