package model

import (
	"errors"
	"time"

	apperrors "wastetrack/internal/shared/errors"
)

// TruckStatus is the dispatch state of a truck.
type TruckStatus string

const (
	TruckAvailable   TruckStatus = "available"
	TruckAssigned    TruckStatus = "assigned"
	TruckMaintenance TruckStatus = "maintenance"
)

var ErrTruckNotFound = errors.New("truck not found")

// Truck is a fleet vehicle.
type Truck struct {
	ID              string      `json:"id" bson:"_id"`
	TruckID         string      `json:"truckId" bson:"truckId"`
	PlateNumber     string      `json:"plateNumber" bson:"plateNumber"`
	Capacity        float64     `json:"capacity" bson:"capacity"`
	Status          TruckStatus `json:"status" bson:"status"`
	CurrentLocation string      `json:"currentLocation,omitempty" bson:"currentLocation,omitempty"`
	CityID          string      `json:"cityId" bson:"cityId"`
	CreatedAt       time.Time   `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" bson:"updated_at"`
}

// ValidateFields checks the required truck fields.
func (t *Truck) ValidateFields() error {
	if t.TruckID == "" {
		return apperrors.NewValidationError("truck ID is required")
	}
	if t.PlateNumber == "" {
		return apperrors.NewValidationError("plate number is required")
	}
	if t.Capacity < 0 {
		return apperrors.NewValidationError("capacity cannot be negative")
	}
	if t.CityID == "" {
		return apperrors.NewValidationError("city is required")
	}
	return nil
}
