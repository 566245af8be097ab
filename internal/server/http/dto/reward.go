package dto

import (
	"time"

	"github.com/washpoint/washpoint/internal/domain/model"
)

// RewardStatusResponse is the reward ledger projection returned to clients.
type RewardStatusResponse struct {
	IsEligibleForDiscount  bool    `json:"isEligibleForDiscount"`
	NextDiscountAmount     float64 `json:"nextDiscountAmount"`
	OrdersUntilDiscount    int     `json:"ordersUntilDiscount"`
	CurrentCycleOrderCount int     `json:"currentCycleOrderCount"`
	CurrentCycleTotal      float64 `json:"currentCycleTotal"`
	TotalOrdersCount       int     `json:"totalOrdersCount"`
	CompletedCycles        int     `json:"completedCycles"`
	TotalRewardsEarned     float64 `json:"totalRewardsEarned"`
}

// EligibilityResponse answers a discount eligibility query.
type EligibilityResponse struct {
	IsEligible           bool    `json:"isEligible"`
	DiscountAmount       float64 `json:"discountAmount"`
	OrdersInCurrentCycle int     `json:"ordersInCurrentCycle"`
	Message              string  `json:"message"`
}

// CycleOrderResponse is a tracked order inside the current cycle.
type CycleOrderResponse struct {
	OrderID    int64     `json:"orderId"`
	Amount     float64   `json:"amount"`
	RecordedAt time.Time `json:"recordedAt"`
}

// CompletedCycleResponse is a finished reward cycle snapshot.
type CompletedCycleResponse struct {
	OrderIDs        []int64   `json:"orderIds"`
	TotalAmount     float64   `json:"totalAmount"`
	AverageAmount   float64   `json:"averageAmount"`
	DiscountApplied float64   `json:"discountApplied"`
	DiscountOrderID int64     `json:"discountOrderId"`
	CompletedAt     time.Time `json:"completedAt"`
}

// RewardHistoryResponse is the full reward record of a customer.
type RewardHistoryResponse struct {
	CompletedCycles    []CompletedCycleResponse `json:"completedCycles"`
	CurrentCycle       []CycleOrderResponse     `json:"currentCycle"`
	TotalOrdersCount   int                      `json:"totalOrdersCount"`
	TotalRewardsEarned float64                  `json:"totalRewardsEarned"`
}

// FromRewardStatus converts the domain projection into its response form.
func FromRewardStatus(status *model.RewardStatus) RewardStatusResponse {
	return RewardStatusResponse{
		IsEligibleForDiscount:  status.IsEligibleForDiscount,
		NextDiscountAmount:     status.NextDiscountAmount,
		OrdersUntilDiscount:    status.OrdersUntilDiscount,
		CurrentCycleOrderCount: status.CurrentCycleOrderCount,
		CurrentCycleTotal:      status.CurrentCycleTotal,
		TotalOrdersCount:       status.TotalOrdersCount,
		CompletedCycles:        status.CompletedCyclesCount,
		TotalRewardsEarned:     status.TotalRewardsEarned,
	}
}

// FromRewardHistory converts the domain history into its response form.
func FromRewardHistory(history *model.RewardHistory) RewardHistoryResponse {
	cycles := make([]CompletedCycleResponse, 0, len(history.CompletedCycles))
	for _, c := range history.CompletedCycles {
		cycles = append(cycles, CompletedCycleResponse{
			OrderIDs:        c.OrderIDs,
			TotalAmount:     c.TotalAmount,
			AverageAmount:   c.AverageAmount,
			DiscountApplied: c.DiscountApplied,
			DiscountOrderID: c.DiscountOrderID,
			CompletedAt:     c.CompletedAt,
		})
	}
	current := make([]CycleOrderResponse, 0, len(history.CurrentCycle))
	for _, e := range history.CurrentCycle {
		current = append(current, CycleOrderResponse{OrderID: e.OrderID, Amount: e.Amount, RecordedAt: e.RecordedAt})
	}
	return RewardHistoryResponse{
		CompletedCycles:    cycles,
		CurrentCycle:       current,
		TotalOrdersCount:   history.TotalOrdersCount,
		TotalRewardsEarned: history.TotalRewardsEarned,
	}
}
