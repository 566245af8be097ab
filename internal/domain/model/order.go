package model

import "time"

// OrderStatus describes fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusReady      OrderStatus = "READY"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// PaymentMethod describes how the customer pays for an order.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodMobile PaymentMethod = "MOBILE"
)

// Location is a pickup or dropoff point with geographic coordinates.
type Location struct {
	Address   string
	Latitude  float64
	Longitude float64
}

// OrderItem is a single service line of an order.
type OrderItem struct {
	ServiceItemID int64
	Name          string
	Quantity      int
	UnitPrice     float64
}

// PlaceOrderItem is one requested service line of a new order.
type PlaceOrderItem struct {
	ServiceItemID int64
	Quantity      int
}

// PlaceOrderInput carries everything needed to place an order.
type PlaceOrderInput struct {
	// CustomerID names the target customer when a staff member places the
	// order; customers always order for themselves.
	CustomerID    int64
	Items         []PlaceOrderItem
	Pickup        Location
	Dropoff       Location
	PaymentMethod PaymentMethod
	PhoneNumber   string
}

// Order represents a pickup/delivery laundry order.
type Order struct {
	ID             int64
	CustomerID     int64
	PlacedBy       int64
	Status         OrderStatus
	Items          []OrderItem
	Pickup         Location
	Dropoff        Location
	PaymentMethod  PaymentMethod
	Total          float64
	OriginalTotal  float64
	RewardDiscount float64
	IsRewardOrder  bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
