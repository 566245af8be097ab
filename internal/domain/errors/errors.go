package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidOrderData   = errors.New("invalid order data")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrForbidden          = errors.New("forbidden")
	ErrPaymentFailed      = errors.New("payment initiation failed")
)
