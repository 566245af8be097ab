package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/washpoint/washpoint/internal/domain/errors"
	"github.com/washpoint/washpoint/internal/domain/model"
	"github.com/washpoint/washpoint/internal/domain/repository"
)

const notEligibleMessage = "Customer is not eligible for discount"

// RewardUseCase implements the loyalty reward engine. It is stateless; all
// reward state lives in the per-customer ledger, mutated only under the
// repository's per-customer lock.
type RewardUseCase struct {
	rewards repository.RewardRepository
	orders  repository.OrderRepository
}

// NewRewardUseCase constructs RewardUseCase.
func NewRewardUseCase(rewards repository.RewardRepository, orders repository.OrderRepository) *RewardUseCase {
	return &RewardUseCase{rewards: rewards, orders: orders}
}

// TrackOrder records a paid order against the customer's current reward
// cycle. Completing the cycle unlocks a discount equal to the rounded cycle
// average; the cycle itself is cleared later, when the discount is applied.
func (u *RewardUseCase) TrackOrder(ctx context.Context, customerID, orderID int64, amount float64) (*model.RewardStatus, string, error) {
	if amount < 0 {
		return nil, "", fmt.Errorf("%w: order amount must not be negative", domainErrors.ErrInvalidAmount)
	}

	var (
		status  *model.RewardStatus
		message string
	)
	err := u.rewards.WithLedger(ctx, customerID, func(l *model.RewardLedger) error {
		if len(l.CurrentCycle) >= model.CycleSize {
			return fmt.Errorf("reward cycle full for customer %d: pending discount must be applied first", customerID)
		}

		l.CurrentCycle = append(l.CurrentCycle, model.CycleOrder{
			OrderID:    orderID,
			Amount:     amount,
			RecordedAt: time.Now(),
		})
		l.TotalOrdersCount++

		if len(l.CurrentCycle) == model.CycleSize {
			unlockDiscount(l)
			message = fmt.Sprintf("Order tracked. Cycle complete: discount of %.2f unlocked for the next order.", l.NextDiscountAmount)
		} else {
			message = fmt.Sprintf("Order tracked. %d/%d orders in current cycle.", len(l.CurrentCycle), model.CycleSize)
		}
		status = statusOf(l)
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return status, message, nil
}

// unlockDiscount computes the cycle average and marks the ledger eligible.
// Calling it with anything but a full cycle is a logic bug in the engine.
func unlockDiscount(l *model.RewardLedger) {
	if len(l.CurrentCycle) != model.CycleSize {
		panic(fmt.Sprintf("reward: discount computed on cycle of %d orders for customer %d", len(l.CurrentCycle), l.CustomerID))
	}

	total := decimal.Zero
	for _, o := range l.CurrentCycle {
		total = total.Add(decimal.NewFromFloat(o.Amount))
	}
	average := total.Div(decimal.NewFromInt(model.CycleSize)).Round(2)

	l.NextDiscountAmount, _ = average.Float64()
	l.IsEligibleForDiscount = true
}

// CheckEligibility is a read-only query; it never mutates the ledger.
func (u *RewardUseCase) CheckEligibility(ctx context.Context, customerID int64) (*model.EligibilityResult, error) {
	ledger, err := u.rewards.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &model.EligibilityResult{Message: "No orders tracked yet."}, nil
		}
		return nil, err
	}

	result := &model.EligibilityResult{
		IsEligible:           ledger.IsEligibleForDiscount,
		DiscountAmount:       ledger.NextDiscountAmount,
		OrdersInCurrentCycle: len(ledger.CurrentCycle),
	}
	if result.IsEligible {
		result.Message = fmt.Sprintf("Discount of %.2f available on the next order.", result.DiscountAmount)
	} else {
		result.Message = fmt.Sprintf("%d more orders until the next discount.", ledger.OrdersUntilDiscount())
	}
	return result, nil
}

// ApplyDiscount consumes the pending discount for the customer and stamps it
// onto the target order. A customer that is not eligible gets a structured
// rejection, not an error; a second call after success is rejected the same
// way, which protects against double discounting.
func (u *RewardUseCase) ApplyDiscount(ctx context.Context, customerID, orderID int64, originalTotal float64) (*model.ApplyDiscountResult, error) {
	rejected := &model.ApplyDiscountResult{
		OriginalTotal: originalTotal,
		FinalTotal:    originalTotal,
		Message:       notEligibleMessage,
	}

	if _, err := u.rewards.Get(ctx, customerID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return rejected, nil
		}
		return nil, err
	}

	var result *model.ApplyDiscountResult
	err := u.rewards.WithLedger(ctx, customerID, func(l *model.RewardLedger) error {
		if !l.IsEligibleForDiscount {
			result = rejected
			return nil
		}

		discount := l.NextDiscountAmount
		final := decimal.NewFromFloat(originalTotal).Sub(decimal.NewFromFloat(discount)).Round(2)
		if final.IsNegative() {
			final = decimal.Zero
		}
		finalTotal, _ := final.Float64()

		orderIDs := make([]int64, 0, len(l.CurrentCycle))
		cycleTotal := decimal.Zero
		for _, o := range l.CurrentCycle {
			orderIDs = append(orderIDs, o.OrderID)
			cycleTotal = cycleTotal.Add(decimal.NewFromFloat(o.Amount))
		}
		totalAmount, _ := cycleTotal.Float64()

		l.CompletedCycles = append(l.CompletedCycles, model.CompletedCycle{
			OrderIDs:        orderIDs,
			TotalAmount:     totalAmount,
			AverageAmount:   discount,
			DiscountApplied: discount,
			DiscountOrderID: orderID,
			CompletedAt:     time.Now(),
		})
		l.TotalRewardsEarned += discount
		l.CurrentCycle = nil
		l.IsEligibleForDiscount = false
		l.NextDiscountAmount = 0

		result = &model.ApplyDiscountResult{
			Success:         true,
			DiscountApplied: discount,
			OriginalTotal:   originalTotal,
			FinalTotal:      finalTotal,
			CycleCompleted:  true,
			Message:         fmt.Sprintf("Discount of %.2f applied.", discount),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Success {
		if err := u.orders.ApplyDiscount(ctx, orderID, originalTotal, result.DiscountApplied, result.FinalTotal); err != nil {
			return nil, fmt.Errorf("stamp discount onto order %d: %w", orderID, err)
		}
	}
	return result, nil
}

// Status returns the live projection of the customer's ledger. A customer
// with no tracked orders gets a zero-valued status, not an error.
func (u *RewardUseCase) Status(ctx context.Context, customerID int64) (*model.RewardStatus, error) {
	ledger, err := u.rewards.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &model.RewardStatus{CustomerID: customerID, OrdersUntilDiscount: model.CycleSize}, nil
		}
		return nil, err
	}
	return statusOf(ledger), nil
}

// History returns completed cycles plus current-cycle detail.
func (u *RewardUseCase) History(ctx context.Context, customerID int64) (*model.RewardHistory, error) {
	ledger, err := u.rewards.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &model.RewardHistory{
				CustomerID:      customerID,
				CompletedCycles: []model.CompletedCycle{},
				CurrentCycle:    []model.CycleOrder{},
			}, nil
		}
		return nil, err
	}

	history := &model.RewardHistory{
		CustomerID:         ledger.CustomerID,
		CompletedCycles:    ledger.CompletedCycles,
		CurrentCycle:       ledger.CurrentCycle,
		TotalOrdersCount:   ledger.TotalOrdersCount,
		TotalRewardsEarned: ledger.TotalRewardsEarned,
	}
	if history.CompletedCycles == nil {
		history.CompletedCycles = []model.CompletedCycle{}
	}
	if history.CurrentCycle == nil {
		history.CurrentCycle = []model.CycleOrder{}
	}
	return history, nil
}

func statusOf(l *model.RewardLedger) *model.RewardStatus {
	return &model.RewardStatus{
		CustomerID:             l.CustomerID,
		CurrentCycleOrderCount: len(l.CurrentCycle),
		OrdersUntilDiscount:    l.OrdersUntilDiscount(),
		CurrentCycleTotal:      l.CurrentCycleTotal(),
		IsEligibleForDiscount:  l.IsEligibleForDiscount,
		NextDiscountAmount:     l.NextDiscountAmount,
		TotalOrdersCount:       l.TotalOrdersCount,
		TotalRewardsEarned:     l.TotalRewardsEarned,
		CompletedCyclesCount:   len(l.CompletedCycles),
	}
}
