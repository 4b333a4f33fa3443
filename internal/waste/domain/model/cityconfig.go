package model

import (
	"errors"
	"strings"
	"time"

	apperrors "wastetrack/internal/shared/errors"
)

// PricingModel selects how householder bills are computed.
type PricingModel string

const (
	PricingFlat        PricingModel = "flat"
	PricingWeightBased PricingModel = "weight-based"
)

// WasteType is a category tag for collected waste.
type WasteType string

const (
	WasteGeneral    WasteType = "general"
	WasteRecyclable WasteType = "recyclable"
	WasteEWaste     WasteType = "e-waste"
	WasteOrganic    WasteType = "organic"
)

// ValidWasteTypes lists the fixed enumeration of category tags.
var ValidWasteTypes = []WasteType{WasteGeneral, WasteRecyclable, WasteEWaste, WasteOrganic}

// PickupFrequency is how often a zone is serviced.
type PickupFrequency string

const (
	PickupDaily    PickupFrequency = "daily"
	PickupWeekly   PickupFrequency = "weekly"
	PickupBiWeekly PickupFrequency = "bi-weekly"
	PickupMonthly  PickupFrequency = "monthly"
)

var validFrequencies = map[PickupFrequency]bool{
	PickupDaily: true, PickupWeekly: true, PickupBiWeekly: true, PickupMonthly: true,
}

var (
	ErrConfigNotFound        = errors.New("configuration not found")
	ErrNoActiveConfig        = errors.New("no active configuration found")
	ErrConfigVersionConflict = errors.New("another configuration version is already active for this city")
)

// CityConfig is one immutable version of a municipality's configuration.
// Only the isActive flag ever changes after creation: it flips true→false
// when the version is superseded. "Updating" a configuration appends a new
// document with version = previous + 1, giving each city an append-only
// audit trail.
type CityConfig struct {
	ID              string                     `json:"id" bson:"_id"`
	CityID          string                     `json:"cityId" bson:"cityId"`
	CityName        string                     `json:"cityName" bson:"cityName"`
	WasteTypes      []WasteType                `json:"wasteTypes" bson:"wasteTypes"`
	PricingModel    PricingModel               `json:"pricingModel" bson:"pricingModel"`
	BaseRate        float64                    `json:"baseRate" bson:"baseRate"`
	RecyclingCredit float64                    `json:"recyclingCredit" bson:"recyclingCredit"`
	PickupFrequency map[string]PickupFrequency `json:"pickupFrequency" bson:"pickupFrequency"`
	Version         int                        `json:"version" bson:"version"`
	IsActive        bool                       `json:"isActive" bson:"isActive"`
	CreatedBy       string                     `json:"createdBy" bson:"createdBy"`
	CreatedAt       time.Time                  `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time                  `json:"updatedAt" bson:"updated_at"`
}

// ConfigDraft is the caller-supplied portion of a configuration. Version,
// active flag and authorship are assigned by the versioning service, never
// by the caller.
type ConfigDraft struct {
	CityID          string                     `json:"cityId"`
	CityName        string                     `json:"cityName"`
	WasteTypes      []WasteType                `json:"wasteTypes"`
	PricingModel    PricingModel               `json:"pricingModel"`
	BaseRate        float64                    `json:"baseRate"`
	RecyclingCredit float64                    `json:"recyclingCredit"`
	PickupFrequency map[string]PickupFrequency `json:"pickupFrequency"`
}

// Validate checks every business rule and reports the full list of
// violations, not just the first. It is the single validation path shared by
// Create and Update, independent of the storage layer.
func (d ConfigDraft) Validate() *apperrors.ValidationErrors {
	ve := apperrors.NewValidationErrors()

	if strings.TrimSpace(d.CityName) == "" {
		ve.Add("cityName", "City name is required", d.CityName)
	}

	if len(d.WasteTypes) == 0 {
		ve.Add("wasteTypes", "At least one waste type is required", nil)
	} else {
		for _, wt := range d.WasteTypes {
			if !isValidWasteType(wt) {
				ve.Add("wasteTypes", "Invalid waste type: "+string(wt), wt)
			}
		}
	}

	if d.BaseRate < 0 {
		ve.Add("baseRate", "Base rate cannot be negative", d.BaseRate)
	}

	if d.RecyclingCredit < 0 {
		ve.Add("recyclingCredit", "Recycling credit cannot be negative", d.RecyclingCredit)
	}

	if len(d.PickupFrequency) == 0 {
		ve.Add("pickupFrequency", "At least one zone pickup frequency is required", nil)
	} else {
		for zone, freq := range d.PickupFrequency {
			if !validFrequencies[freq] {
				ve.Add("pickupFrequency", "Invalid pickup frequency for zone "+zone, freq)
			}
		}
	}

	if d.PricingModel != PricingFlat && d.PricingModel != PricingWeightBased {
		ve.Add("pricingModel", "Invalid pricing model", d.PricingModel)
	}

	return ve
}

func isValidWasteType(wt WasteType) bool {
	for _, v := range ValidWasteTypes {
		if v == wt {
			return true
		}
	}
	return false
}
