package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/washpoint/washpoint/internal/domain/errors"
	"github.com/washpoint/washpoint/internal/domain/model"
	"github.com/washpoint/washpoint/internal/domain/repository"
)

// CatalogUseCase manages the laundry service catalog.
type CatalogUseCase struct {
	services repository.ServiceRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(services repository.ServiceRepository) *CatalogUseCase {
	return &CatalogUseCase{services: services}
}

// Create adds a new catalog entry.
func (u *CatalogUseCase) Create(ctx context.Context, name, unit string, price float64) (*model.ServiceItem, error) {
	if err := validateServiceItem(name, price); err != nil {
		return nil, err
	}
	return u.services.Create(ctx, &model.ServiceItem{
		Name:   strings.TrimSpace(name),
		Unit:   strings.TrimSpace(unit),
		Price:  price,
		Active: true,
	})
}

// Update replaces a catalog entry's fields.
func (u *CatalogUseCase) Update(ctx context.Context, id int64, name, unit string, price float64, active bool) (*model.ServiceItem, error) {
	if err := validateServiceItem(name, price); err != nil {
		return nil, err
	}
	return u.services.Update(ctx, &model.ServiceItem{
		ID:     id,
		Name:   strings.TrimSpace(name),
		Unit:   strings.TrimSpace(unit),
		Price:  price,
		Active: active,
	})
}

// List returns catalog entries; customers only see active ones.
func (u *CatalogUseCase) List(ctx context.Context, activeOnly bool) ([]model.ServiceItem, error) {
	return u.services.List(ctx, activeOnly)
}

func validateServiceItem(name string, price float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: service name is required", domainErrors.ErrInvalidOrderData)
	}
	if price <= 0 {
		return fmt.Errorf("%w: service price must be positive", domainErrors.ErrInvalidAmount)
	}
	return nil
}
