package model

import (
	"errors"
	"time"

	apperrors "wastetrack/internal/shared/errors"
)

// RequestWasteType is the householder-facing waste category used on special
// pickup requests. It is a finer-grained set than the bin categories.
type RequestWasteType string

const (
	RequestPlastic    RequestWasteType = "Plastic"
	RequestPaper      RequestWasteType = "Paper"
	RequestGlass      RequestWasteType = "Glass"
	RequestMetal      RequestWasteType = "Metal"
	RequestOrganic    RequestWasteType = "Organic"
	RequestElectronic RequestWasteType = "Electronic"
)

var validRequestWasteTypes = map[RequestWasteType]bool{
	RequestPlastic: true, RequestPaper: true, RequestGlass: true,
	RequestMetal: true, RequestOrganic: true, RequestElectronic: true,
}

// RequestStatus tracks a waste request through its life.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestCompleted RequestStatus = "completed"
	RequestCancelled RequestStatus = "cancelled"
)

var ErrWasteRequestNotFound = errors.New("waste request not found")

// WasteRequest is a householder's ad-hoc pickup request.
type WasteRequest struct {
	ID         string           `json:"id" bson:"_id"`
	UserID     string           `json:"userId" bson:"userId"`
	WasteType  RequestWasteType `json:"wasteType" bson:"wasteType"`
	Quantity   float64          `json:"quantity" bson:"quantity"`
	PickupDate time.Time        `json:"pickupDate" bson:"pickupDate"`
	Address    string           `json:"address" bson:"address"`
	Status     RequestStatus    `json:"status" bson:"status"`
	Notes      string           `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt  time.Time        `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time        `json:"updatedAt" bson:"updated_at"`
}

// ValidateFields checks the required waste request fields.
func (w *WasteRequest) ValidateFields() error {
	if w.UserID == "" {
		return apperrors.NewValidationError("user is required")
	}
	if !validRequestWasteTypes[w.WasteType] {
		return apperrors.NewValidationError("waste type is required")
	}
	if w.Quantity < 0 {
		return apperrors.NewValidationError("quantity cannot be negative")
	}
	if w.PickupDate.IsZero() {
		return apperrors.NewValidationError("pickup date is required")
	}
	if w.Address == "" {
		return apperrors.NewValidationError("pickup address is required")
	}
	return nil
}
