package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/washpoint/washpoint/internal/adapter/payments"
	domainErrors "github.com/washpoint/washpoint/internal/domain/errors"
	"github.com/washpoint/washpoint/internal/domain/model"
	"github.com/washpoint/washpoint/internal/domain/repository"
)

// OrderUseCase orchestrates order validation, payment collection,
// persistence and reward bookkeeping.
type OrderUseCase struct {
	orders       repository.OrderRepository
	users        repository.UserRepository
	services     repository.ServiceRepository
	transactions repository.TransactionRepository
	collector    payments.Client
	rewards      *RewardUseCase
	logger       *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	users repository.UserRepository,
	services repository.ServiceRepository,
	transactions repository.TransactionRepository,
	collector payments.Client,
	rewards *RewardUseCase,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:       orders,
		users:        users,
		services:     services,
		transactions: transactions,
		collector:    collector,
		rewards:      rewards,
		logger:       logger,
	}
}

// Place validates the input, collects mobile payment when requested,
// persists the order and settles reward bookkeeping. Payment initiation
// failures abort the order; reward tracking failures do not.
func (u *OrderUseCase) Place(ctx context.Context, actor *model.User, in model.PlaceOrderInput) (*model.Order, error) {
	customerID, err := u.resolveCustomer(ctx, actor, in.CustomerID)
	if err != nil {
		return nil, err
	}

	if err := ValidateItems(in.Items); err != nil {
		return nil, err
	}
	if err := ValidateLocation("pickup", in.Pickup); err != nil {
		return nil, err
	}
	if err := ValidateLocation("dropoff", in.Dropoff); err != nil {
		return nil, err
	}

	method := in.PaymentMethod
	if method == "" {
		method = model.PaymentMethodCash
	}
	if method != model.PaymentMethodCash && method != model.PaymentMethodMobile {
		return nil, fmt.Errorf("%w: unsupported payment method %q", domainErrors.ErrInvalidOrderData, method)
	}

	items, originalTotal, err := u.priceItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	// The amount charged accounts for a pending discount, so the collector
	// is asked for what the customer will actually owe.
	eligibility, err := u.rewards.CheckEligibility(ctx, customerID)
	if err != nil {
		return nil, err
	}
	chargeTotal := originalTotal
	if eligibility.IsEligible {
		estimate := decimal.NewFromFloat(originalTotal).Sub(decimal.NewFromFloat(eligibility.DiscountAmount)).Round(2)
		if estimate.IsNegative() {
			estimate = decimal.Zero
		}
		chargeTotal, _ = estimate.Float64()
	}

	var pending *model.Transaction
	if method == model.PaymentMethodMobile {
		if in.PhoneNumber == "" {
			return nil, fmt.Errorf("%w: phone number required for mobile payment", domainErrors.ErrInvalidOrderData)
		}

		collection, err := u.collector.Collect(ctx, chargeTotal, in.PhoneNumber, fmt.Sprintf("WashPoint laundry order, customer %d", customerID))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domainErrors.ErrPaymentFailed, err)
		}

		pending, err = u.transactions.Create(ctx, &model.Transaction{
			Code:        uuid.NewString(),
			CustomerID:  customerID,
			Amount:      chargeTotal,
			PhoneNumber: in.PhoneNumber,
			Reference:   collection.Reference,
			Operator:    collection.Operator,
			Status:      model.TransactionStatusPending,
		})
		if err != nil {
			return nil, err
		}
	}

	order := &model.Order{
		CustomerID:    customerID,
		PlacedBy:      actor.ID,
		Status:        model.OrderStatusPending,
		Items:         items,
		Pickup:        in.Pickup,
		Dropoff:       in.Dropoff,
		PaymentMethod: method,
		Total:         originalTotal,
	}
	created, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	if pending != nil {
		if err := u.transactions.LinkOrder(ctx, pending.ID, created.ID); err != nil {
			u.logger.Error("link transaction to order failed",
				slog.Int64("transaction_id", pending.ID),
				slog.Int64("order_id", created.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	if eligibility.IsEligible {
		// Skipping an earned discount would silently lose customer money,
		// so failures here are fatal to the request.
		applied, err := u.rewards.ApplyDiscount(ctx, customerID, created.ID, originalTotal)
		if err != nil {
			return nil, err
		}
		switch {
		case applied.Success:
			created.OriginalTotal = applied.OriginalTotal
			created.RewardDiscount = applied.DiscountApplied
			created.Total = applied.FinalTotal
			created.IsRewardOrder = true
		case pending != nil && chargeTotal != originalTotal:
			// The collector already took the discounted amount; the order
			// must match the money collected even though the ledger discount
			// went to another order in the meantime.
			honored, _ := decimal.NewFromFloat(originalTotal).Sub(decimal.NewFromFloat(chargeTotal)).Round(2).Float64()
			if err := u.orders.ApplyDiscount(ctx, created.ID, originalTotal, honored, chargeTotal); err != nil {
				return nil, err
			}
			created.OriginalTotal = originalTotal
			created.RewardDiscount = honored
			created.Total = chargeTotal
			created.IsRewardOrder = true
			u.logger.Warn("discount consumed concurrently, order priced at charged amount",
				slog.Int64("customer_id", customerID),
				slog.Int64("order_id", created.ID),
				slog.Float64("charged", chargeTotal),
			)
		default:
			u.logger.Warn("discount no longer available at apply time",
				slog.Int64("customer_id", customerID),
				slog.Int64("order_id", created.ID),
			)
		}
	}

	if _, _, err := u.rewards.TrackOrder(ctx, customerID, created.ID, created.Total); err != nil {
		u.logger.Error("reward tracking failed",
			slog.Int64("customer_id", customerID),
			slog.Int64("order_id", created.ID),
			slog.String("error", err.Error()),
		)
	}

	return created, nil
}

// GetByID fetches a single order.
func (u *OrderUseCase) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// ListByCustomer returns the customer's orders sorted by creation time.
func (u *OrderUseCase) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return u.orders.ListByCustomer(ctx, customerID)
}

func (u *OrderUseCase) resolveCustomer(ctx context.Context, actor *model.User, explicit int64) (int64, error) {
	if actor == nil {
		return 0, domainErrors.ErrInvalidCredentials
	}
	if !actor.Role.IsStaff() {
		return actor.ID, nil
	}
	if explicit == 0 {
		return 0, fmt.Errorf("%w: customer id required for staff orders", domainErrors.ErrInvalidOrderData)
	}
	customer, err := u.users.GetByID(ctx, explicit)
	if err != nil {
		return 0, err
	}
	return customer.ID, nil
}

func (u *OrderUseCase) priceItems(ctx context.Context, requested []model.PlaceOrderItem) ([]model.OrderItem, float64, error) {
	items := make([]model.OrderItem, 0, len(requested))
	total := decimal.Zero
	for _, req := range requested {
		svc, err := u.services.GetByID(ctx, req.ServiceItemID)
		if err != nil {
			return nil, 0, fmt.Errorf("service item %d: %w", req.ServiceItemID, err)
		}
		if !svc.Active {
			return nil, 0, fmt.Errorf("%w: service item %q is not available", domainErrors.ErrInvalidOrderData, svc.Name)
		}
		items = append(items, model.OrderItem{
			ServiceItemID: svc.ID,
			Name:          svc.Name,
			Quantity:      req.Quantity,
			UnitPrice:     svc.Price,
		})
		line := decimal.NewFromFloat(svc.Price).Mul(decimal.NewFromInt(int64(req.Quantity)))
		total = total.Add(line)
	}
	orderTotal, _ := total.Round(2).Float64()
	return items, orderTotal, nil
}
