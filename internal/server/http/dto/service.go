package dto

import (
	"time"

	"github.com/washpoint/washpoint/internal/domain/model"
)

// CreateServiceRequest describes a new catalog entry.
type CreateServiceRequest struct {
	Name  string  `json:"name"`
	Unit  string  `json:"unit"`
	Price float64 `json:"price"`
}

// UpdateServiceRequest replaces an existing catalog entry.
type UpdateServiceRequest struct {
	Name   string  `json:"name"`
	Unit   string  `json:"unit"`
	Price  float64 `json:"price"`
	Active bool    `json:"active"`
}

// ServiceResponse describes a catalog entry returned to clients.
type ServiceResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Price     float64   `json:"price"`
	Active    bool      `json:"active"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromServiceItem converts a catalog entry into its response form.
func FromServiceItem(item model.ServiceItem) ServiceResponse {
	return ServiceResponse{
		ID:        item.ID,
		Name:      item.Name,
		Unit:      item.Unit,
		Price:     item.Price,
		Active:    item.Active,
		UpdatedAt: item.UpdatedAt,
	}
}
