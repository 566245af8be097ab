package model

import "time"

// ServiceItem is a priced entry of the laundry service catalog.
type ServiceItem struct {
	ID        int64
	Name      string
	Unit      string
	Price     float64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
