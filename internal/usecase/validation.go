package usecase

import (
	"fmt"
	"strings"

	domainErrors "github.com/washpoint/washpoint/internal/domain/errors"
	"github.com/washpoint/washpoint/internal/domain/model"
)

// ValidateLocation checks that a pickup/dropoff point has an address and
// coordinates within geographic bounds.
func ValidateLocation(kind string, loc model.Location) error {
	if strings.TrimSpace(loc.Address) == "" {
		return fmt.Errorf("%w: %s address is required", domainErrors.ErrInvalidOrderData, kind)
	}
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return fmt.Errorf("%w: %s latitude %.4f out of range", domainErrors.ErrInvalidCoordinates, kind, loc.Latitude)
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		return fmt.Errorf("%w: %s longitude %.4f out of range", domainErrors.ErrInvalidCoordinates, kind, loc.Longitude)
	}
	return nil
}

// ValidateItems checks that an order carries at least one sensible line item.
func ValidateItems(items []model.PlaceOrderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", domainErrors.ErrInvalidOrderData)
	}
	for _, item := range items {
		if item.ServiceItemID <= 0 {
			return fmt.Errorf("%w: invalid service item id %d", domainErrors.ErrInvalidOrderData, item.ServiceItemID)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive for service item %d", domainErrors.ErrInvalidOrderData, item.ServiceItemID)
		}
	}
	return nil
}
