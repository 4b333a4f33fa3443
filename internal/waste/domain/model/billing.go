package model

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	apperrors "wastetrack/internal/shared/errors"
)

// PaymentStatus tracks a bill through its life.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
)

var ErrBillingNotFound = errors.New("billing record not found")

var monthRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)

// WasteBreakdown is the per-category share of a month's collected weight.
type WasteBreakdown struct {
	General    float64 `json:"general" bson:"general"`
	Recyclable float64 `json:"recyclable" bson:"recyclable"`
	Organic    float64 `json:"organic" bson:"organic"`
	EWaste     float64 `json:"eWaste" bson:"eWaste"`
}

// Billing is one householder's bill for one month. TotalAmount is always
// BaseCharge minus RecyclingCredits.
type Billing struct {
	ID               string         `json:"id" bson:"_id"`
	BillingID        string         `json:"billingId" bson:"billingId"`
	HouseholderID    string         `json:"householderId" bson:"householderId"`
	Month            string         `json:"month" bson:"month"`
	WasteWeight      float64        `json:"wasteWeight" bson:"wasteWeight"`
	WasteBreakdown   WasteBreakdown `json:"wasteBreakdown" bson:"wasteBreakdown"`
	BaseCharge       float64        `json:"baseCharge" bson:"baseCharge"`
	RecyclingCredits float64        `json:"recyclingCredits" bson:"recyclingCredits"`
	TotalAmount      float64        `json:"totalAmount" bson:"totalAmount"`
	PaymentStatus    PaymentStatus  `json:"paymentStatus" bson:"paymentStatus"`
	PaymentDate      *time.Time     `json:"paymentDate,omitempty" bson:"paymentDate,omitempty"`
	DueDate          time.Time      `json:"dueDate" bson:"dueDate"`
	PaymentMethod    string         `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	CityID           string         `json:"cityId" bson:"cityId"`
	CreatedAt        time.Time      `json:"createdAt" bson:"created_at"`
	UpdatedAt        time.Time      `json:"updatedAt" bson:"updated_at"`
}

// MakeBillingID derives the external bill identifier from its month and the
// tail of the householder's ID.
func MakeBillingID(month, householderID string) string {
	suffix := householderID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return fmt.Sprintf("BILL-%s-%s", month, suffix)
}

// Recalculate settles the derived total from its parts.
func (b *Billing) Recalculate() {
	b.TotalAmount = b.BaseCharge - b.RecyclingCredits
}

// ValidateFields checks the required billing fields.
func (b *Billing) ValidateFields() error {
	if b.HouseholderID == "" {
		return apperrors.NewValidationError("householder is required")
	}
	if !monthRegex.MatchString(b.Month) {
		return apperrors.NewValidationError(fmt.Sprintf("%s is not a valid month format (YYYY-MM)", b.Month))
	}
	if b.WasteWeight < 0 {
		return apperrors.NewValidationError("total waste weight cannot be negative")
	}
	if b.BaseCharge < 0 {
		return apperrors.NewValidationError("base charge cannot be negative")
	}
	if b.CityID == "" {
		return apperrors.NewValidationError("city is required")
	}
	return nil
}
