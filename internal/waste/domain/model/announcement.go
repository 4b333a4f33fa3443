package model

import (
	"errors"
	"strings"
	"time"

	apperrors "wastetrack/internal/shared/errors"
)

// AnnouncementType is the urgency of a public announcement.
type AnnouncementType string

const (
	AnnouncementGeneral   AnnouncementType = "general"
	AnnouncementImportant AnnouncementType = "important"
	AnnouncementUrgent    AnnouncementType = "urgent"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

// Announcement is a public notice shown to householders.
type Announcement struct {
	ID         string           `json:"id" bson:"_id"`
	Title      string           `json:"title" bson:"title"`
	Content    string           `json:"content" bson:"content"`
	Type       AnnouncementType `json:"type" bson:"type"`
	Date       time.Time        `json:"date" bson:"date"`
	ExpiryDate *time.Time       `json:"expiryDate,omitempty" bson:"expiryDate,omitempty"`
	IsActive   bool             `json:"isActive" bson:"isActive"`
	CreatedAt  time.Time        `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time        `json:"updatedAt" bson:"updated_at"`
}

// ValidateFields checks the required announcement fields.
func (a *Announcement) ValidateFields() error {
	if strings.TrimSpace(a.Title) == "" {
		return apperrors.NewValidationError("title is required")
	}
	if strings.TrimSpace(a.Content) == "" {
		return apperrors.NewValidationError("content is required")
	}
	return nil
}
