package dto

import (
	"time"

	"github.com/washpoint/washpoint/internal/domain/model"
)

// TransactionResponse describes a mobile-money payment record.
type TransactionResponse struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	OrderID     *int64    `json:"orderId,omitempty"`
	Amount      float64   `json:"amount"`
	PhoneNumber string    `json:"phoneNumber"`
	Reference   string    `json:"reference"`
	Operator    string    `json:"operator"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromTransaction converts a payment record into its response form.
func FromTransaction(t model.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Code:        t.Code,
		OrderID:     t.OrderID,
		Amount:      t.Amount,
		PhoneNumber: t.PhoneNumber,
		Reference:   t.Reference,
		Operator:    t.Operator,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
	}
}
