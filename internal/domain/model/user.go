package model

import "time"

// UserRole describes the access level of an account.
type UserRole string

const (
	RoleCustomer     UserRole = "customer"
	RoleReceptionist UserRole = "receptionist"
	RoleAdmin        UserRole = "admin"
)

// IsStaff reports whether the role may act on behalf of other customers.
func (r UserRole) IsStaff() bool {
	return r == RoleReceptionist || r == RoleAdmin
}

// User represents a registered account of the laundry service.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         UserRole
	Phone        string
	CreatedAt    time.Time
}
