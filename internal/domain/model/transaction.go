package model

import "time"

// TransactionStatus mirrors the payment collector's status values.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "PENDING"
	TransactionStatusSuccessful TransactionStatus = "SUCCESSFUL"
	TransactionStatusFailed     TransactionStatus = "FAILED"
)

// Transaction is a mobile-money payment record tied to an order.
type Transaction struct {
	ID          int64
	Code        string
	CustomerID  int64
	OrderID     *int64
	Amount      float64
	PhoneNumber string
	Reference   string
	Operator    string
	Status      TransactionStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
