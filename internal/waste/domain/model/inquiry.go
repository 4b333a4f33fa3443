package model

import (
	"errors"
	"strings"
	"time"

	apperrors "wastetrack/internal/shared/errors"
)

// InquiryStatus tracks whether staff have answered an inquiry.
type InquiryStatus string

const (
	InquiryPending   InquiryStatus = "pending"
	InquiryResponded InquiryStatus = "responded"
)

var ErrInquiryNotFound = errors.New("inquiry not found")

// Inquiry is a householder's question or complaint, answered by staff.
type Inquiry struct {
	ID           string        `json:"id" bson:"_id"`
	UserID       string        `json:"userId" bson:"userId"`
	Subject      string        `json:"subject" bson:"subject"`
	Message      string        `json:"message" bson:"message"`
	Status       InquiryStatus `json:"status" bson:"status"`
	Response     string        `json:"response,omitempty" bson:"response,omitempty"`
	ResponseDate *time.Time    `json:"responseDate,omitempty" bson:"responseDate,omitempty"`
	CreatedAt    time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updated_at"`
}

// ValidateFields checks the required inquiry fields.
func (i *Inquiry) ValidateFields() error {
	if i.UserID == "" {
		return apperrors.NewValidationError("user is required")
	}
	if strings.TrimSpace(i.Subject) == "" {
		return apperrors.NewValidationError("subject is required")
	}
	if strings.TrimSpace(i.Message) == "" {
		return apperrors.NewValidationError("message is required")
	}
	return nil
}
