package usecase

import (
	"errors"
	"testing"

	domainErrors "github.com/washpoint/washpoint/internal/domain/errors"
	"github.com/washpoint/washpoint/internal/domain/model"
)

func TestValidateLocation(t *testing.T) {
	tests := []struct {
		name    string
		loc     model.Location
		wantErr error
	}{
		{"valid", model.Location{Address: "12 Main St", Latitude: 3.87, Longitude: 11.52}, nil},
		{"boundary coordinates", model.Location{Address: "Pole", Latitude: -90, Longitude: 180}, nil},
		{"missing address", model.Location{Latitude: 3.87, Longitude: 11.52}, domainErrors.ErrInvalidOrderData},
		{"blank address", model.Location{Address: "   ", Latitude: 3.87, Longitude: 11.52}, domainErrors.ErrInvalidOrderData},
		{"latitude too high", model.Location{Address: "x", Latitude: 90.1, Longitude: 0}, domainErrors.ErrInvalidCoordinates},
		{"latitude too low", model.Location{Address: "x", Latitude: -90.1, Longitude: 0}, domainErrors.ErrInvalidCoordinates},
		{"longitude too high", model.Location{Address: "x", Latitude: 0, Longitude: 180.1}, domainErrors.ErrInvalidCoordinates},
		{"longitude too low", model.Location{Address: "x", Latitude: 0, Longitude: -180.1}, domainErrors.ErrInvalidCoordinates},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateLocation("pickup", tc.loc)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestValidateItems(t *testing.T) {
	tests := []struct {
		name    string
		items   []model.PlaceOrderItem
		wantErr bool
	}{
		{"valid", []model.PlaceOrderItem{{ServiceItemID: 1, Quantity: 2}}, false},
		{"empty", nil, true},
		{"zero quantity", []model.PlaceOrderItem{{ServiceItemID: 1, Quantity: 0}}, true},
		{"negative quantity", []model.PlaceOrderItem{{ServiceItemID: 1, Quantity: -1}}, true},
		{"bad service id", []model.PlaceOrderItem{{ServiceItemID: 0, Quantity: 1}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateItems(tc.items)
			if tc.wantErr && !errors.Is(err, domainErrors.ErrInvalidOrderData) {
				t.Fatalf("expected ErrInvalidOrderData, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
