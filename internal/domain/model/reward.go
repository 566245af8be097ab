package model

import "time"

// CycleSize is the number of tracked orders that completes a reward cycle.
const CycleSize = 10

// CycleOrder is a single tracked order inside the current reward cycle.
type CycleOrder struct {
	OrderID    int64
	Amount     float64
	RecordedAt time.Time
}

// CompletedCycle is an immutable snapshot of a finished reward cycle.
type CompletedCycle struct {
	OrderIDs        []int64
	TotalAmount     float64
	AverageAmount   float64
	DiscountApplied float64
	DiscountOrderID int64
	CompletedAt     time.Time
}

// RewardLedger accumulates a customer's order history into reward cycles.
// It is a plain data record; all mutation happens in the reward use case
// under a per-customer lock.
type RewardLedger struct {
	CustomerID            int64
	CurrentCycle          []CycleOrder
	TotalOrdersCount      int
	CompletedCycles       []CompletedCycle
	IsEligibleForDiscount bool
	NextDiscountAmount    float64
	TotalRewardsEarned    float64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// CurrentCycleTotal sums the amounts tracked in the current cycle.
func (l *RewardLedger) CurrentCycleTotal() float64 {
	var total float64
	for _, o := range l.CurrentCycle {
		total += o.Amount
	}
	return total
}

// OrdersUntilDiscount reports how many more orders complete the cycle.
func (l *RewardLedger) OrdersUntilDiscount() int {
	remaining := CycleSize - len(l.CurrentCycle)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RewardStatus is a read-only projection of a ledger.
type RewardStatus struct {
	CustomerID             int64
	CurrentCycleOrderCount int
	OrdersUntilDiscount    int
	CurrentCycleTotal      float64
	IsEligibleForDiscount  bool
	NextDiscountAmount     float64
	TotalOrdersCount       int
	TotalRewardsEarned     float64
	CompletedCyclesCount   int
}

// RewardHistory is the full reward record of a customer.
type RewardHistory struct {
	CustomerID         int64
	CompletedCycles    []CompletedCycle
	CurrentCycle       []CycleOrder
	TotalOrdersCount   int
	TotalRewardsEarned float64
}

// EligibilityResult answers a discount eligibility query.
type EligibilityResult struct {
	IsEligible           bool
	DiscountAmount       float64
	OrdersInCurrentCycle int
	Message              string
}

// ApplyDiscountResult reports the outcome of a discount application.
// Success=false is a business-rule rejection, not a system error.
type ApplyDiscountResult struct {
	Success         bool
	DiscountApplied float64
	OriginalTotal   float64
	FinalTotal      float64
	CycleCompleted  bool
	Message         string
}
