package dto

import (
	"time"

	"github.com/washpoint/washpoint/internal/domain/model"
)

// LocationPayload is a pickup or dropoff point.
type LocationPayload struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlaceOrderItemRequest is one requested service line.
type PlaceOrderItemRequest struct {
	ServiceItemID int64 `json:"serviceItemId"`
	Quantity      int   `json:"quantity"`
}

// PlaceOrderRequest describes the order placement payload. CustomerID is
// honoured only for staff accounts.
type PlaceOrderRequest struct {
	CustomerID    int64                   `json:"customerId"`
	Items         []PlaceOrderItemRequest `json:"items"`
	Pickup        LocationPayload         `json:"pickup"`
	Dropoff       LocationPayload         `json:"dropoff"`
	PaymentMethod string                  `json:"paymentMethod"`
	PhoneNumber   string                  `json:"phoneNumber"`
}

// OrderItemResponse is a single service line of an order.
type OrderItemResponse struct {
	ServiceItemID int64   `json:"serviceItemId"`
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unitPrice"`
}

// OrderResponse describes an order returned to clients.
type OrderResponse struct {
	ID             int64               `json:"id"`
	CustomerID     int64               `json:"customerId"`
	Status         string              `json:"status"`
	Items          []OrderItemResponse `json:"items"`
	Pickup         LocationPayload     `json:"pickup"`
	Dropoff        LocationPayload     `json:"dropoff"`
	PaymentMethod  string              `json:"paymentMethod"`
	Total          float64             `json:"total"`
	OriginalTotal  float64             `json:"originalTotal"`
	RewardDiscount float64             `json:"rewardDiscount"`
	IsRewardOrder  bool                `json:"isRewardOrder"`
	CreatedAt      time.Time           `json:"createdAt"`
}

// ToPlaceOrderInput converts the request into the domain input.
func (r PlaceOrderRequest) ToPlaceOrderInput() model.PlaceOrderInput {
	items := make([]model.PlaceOrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, model.PlaceOrderItem{ServiceItemID: item.ServiceItemID, Quantity: item.Quantity})
	}
	return model.PlaceOrderInput{
		CustomerID:    r.CustomerID,
		Items:         items,
		Pickup:        model.Location{Address: r.Pickup.Address, Latitude: r.Pickup.Latitude, Longitude: r.Pickup.Longitude},
		Dropoff:       model.Location{Address: r.Dropoff.Address, Latitude: r.Dropoff.Latitude, Longitude: r.Dropoff.Longitude},
		PaymentMethod: model.PaymentMethod(r.PaymentMethod),
		PhoneNumber:   r.PhoneNumber,
	}
}

// FromOrder converts a domain order into its response form.
func FromOrder(order model.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ServiceItemID: item.ServiceItemID,
			Name:          item.Name,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
		})
	}
	return OrderResponse{
		ID:             order.ID,
		CustomerID:     order.CustomerID,
		Status:         string(order.Status),
		Items:          items,
		Pickup:         LocationPayload{Address: order.Pickup.Address, Latitude: order.Pickup.Latitude, Longitude: order.Pickup.Longitude},
		Dropoff:        LocationPayload{Address: order.Dropoff.Address, Latitude: order.Dropoff.Latitude, Longitude: order.Dropoff.Longitude},
		PaymentMethod:  string(order.PaymentMethod),
		Total:          order.Total,
		OriginalTotal:  order.OriginalTotal,
		RewardDiscount: order.RewardDiscount,
		IsRewardOrder:  order.IsRewardOrder,
		CreatedAt:      order.CreatedAt,
	}
}
