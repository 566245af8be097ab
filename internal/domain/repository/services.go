package repository

import (
	"context"

	"github.com/washpoint/washpoint/internal/domain/model"
)

// ServiceRepository manages the laundry service catalog.
type ServiceRepository interface {
	Create(ctx context.Context, item *model.ServiceItem) (*model.ServiceItem, error)
	Update(ctx context.Context, item *model.ServiceItem) (*model.ServiceItem, error)
	GetByID(ctx context.Context, id int64) (*model.ServiceItem, error)
	List(ctx context.Context, activeOnly bool) ([]model.ServiceItem, error)
}
