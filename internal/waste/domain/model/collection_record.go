package model

import (
	"errors"
	"time"

	apperrors "wastetrack/internal/shared/errors"
)

// IssueType classifies a problem reported during collection.
type IssueType string

const (
	IssueDamaged       IssueType = "damaged"
	IssueBlockedAccess IssueType = "blocked-access"
	IssueOverflow      IssueType = "overflow"
	IssueOther         IssueType = "other"
)

var ErrCollectionRecordNotFound = errors.New("collection record not found")

// CollectionIssue is an optional problem report attached to a pickup.
type CollectionIssue struct {
	Type        IssueType `json:"type" bson:"type"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	ReportedAt  time.Time `json:"reportedAt" bson:"reportedAt"`
	Resolved    bool      `json:"resolved" bson:"resolved"`
}

// CollectionRecord is one pickup of one bin by a collector on a route. It is
// the source event for billing accrual.
type CollectionRecord struct {
	ID            string           `json:"id" bson:"_id"`
	RouteID       string           `json:"routeId" bson:"routeId"`
	BinID         string           `json:"binId" bson:"binId"`
	CollectorID   string           `json:"collectorId" bson:"collectorId"`
	HouseholderID string           `json:"householderId" bson:"householderId"`
	CollectedAt   time.Time        `json:"collectedAt" bson:"collectedAt"`
	WasteWeight   float64          `json:"wasteWeight" bson:"wasteWeight"`
	WasteType     WasteType        `json:"wasteType" bson:"wasteType"`
	Notes         string           `json:"notes,omitempty" bson:"notes,omitempty"`
	Collected     bool             `json:"collected" bson:"collected"`
	Issue         *CollectionIssue `json:"issue,omitempty" bson:"issue,omitempty"`
	CityID        string           `json:"cityId" bson:"cityId"`
	CreatedAt     time.Time        `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time        `json:"updatedAt" bson:"updated_at"`
}

// ValidateFields checks the required collection record fields.
func (r *CollectionRecord) ValidateFields() error {
	if r.RouteID == "" {
		return apperrors.NewValidationError("route is required")
	}
	if r.BinID == "" {
		return apperrors.NewValidationError("bin is required")
	}
	if r.CollectorID == "" {
		return apperrors.NewValidationError("collector is required")
	}
	if r.HouseholderID == "" {
		return apperrors.NewValidationError("householder is required")
	}
	if r.WasteWeight < 0 {
		return apperrors.NewValidationError("weight cannot be negative")
	}
	if !isValidWasteType(r.WasteType) {
		return apperrors.NewValidationError("waste type is required")
	}
	if r.CityID == "" {
		return apperrors.NewValidationError("city is required")
	}
	return nil
}
