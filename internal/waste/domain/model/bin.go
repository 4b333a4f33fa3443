package model

import (
	"errors"
	"time"

	apperrors "wastetrack/internal/shared/errors"
)

// BinStatus is the operational state of a bin.
type BinStatus string

const (
	BinActive      BinStatus = "active"
	BinMaintenance BinStatus = "maintenance"
	BinDamaged     BinStatus = "damaged"
)

var ErrBinNotFound = errors.New("bin not found")

// Bin is a registered collection point assigned to a householder.
type Bin struct {
	ID            string    `json:"id" bson:"_id"`
	BinID         string    `json:"binId" bson:"binId"`
	Address       string    `json:"address" bson:"address"`
	Zone          string    `json:"zone" bson:"zone"`
	WasteType     WasteType `json:"wasteType" bson:"wasteType"`
	Status        BinStatus `json:"status" bson:"status"`
	HouseholderID string    `json:"householderId" bson:"householderId"`
	CityID        string    `json:"cityId" bson:"cityId"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updated_at"`
}

// ValidateFields checks the required bin fields.
func (b *Bin) ValidateFields() error {
	if b.BinID == "" {
		return apperrors.NewValidationError("bin ID is required")
	}
	if b.Address == "" {
		return apperrors.NewValidationError("address is required")
	}
	if b.Zone == "" {
		return apperrors.NewValidationError("zone is required")
	}
	if !isValidWasteType(b.WasteType) {
		return apperrors.NewValidationError("waste type is required")
	}
	if b.HouseholderID == "" {
		return apperrors.NewValidationError("householder is required")
	}
	if b.CityID == "" {
		return apperrors.NewValidationError("city is required")
	}
	return nil
}
