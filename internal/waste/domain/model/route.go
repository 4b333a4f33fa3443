package model

import (
	"errors"
	"time"

	apperrors "wastetrack/internal/shared/errors"
)

// RouteStatus tracks a collection route through its day.
type RouteStatus string

const (
	RouteScheduled  RouteStatus = "Scheduled"
	RouteInProgress RouteStatus = "In Progress"
	RouteCompleted  RouteStatus = "Completed"
)

var ErrRouteNotFound = errors.New("route not found")

// Route is a planned collection run: one truck covering a set of zones on a
// given date.
type Route struct {
	ID        string      `json:"id" bson:"_id"`
	Truck     string      `json:"truck" bson:"truck"`
	Zones     []string    `json:"zones" bson:"zones"`
	Date      time.Time   `json:"date" bson:"date"`
	Status    RouteStatus `json:"status" bson:"status"`
	CreatedAt time.Time   `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" bson:"updated_at"`
}

// ValidateFields checks the required route fields.
func (r *Route) ValidateFields() error {
	if r.Truck == "" {
		return apperrors.NewValidationError("truck is required")
	}
	if len(r.Zones) == 0 {
		return apperrors.NewValidationError("at least one zone is required")
	}
	if r.Date.IsZero() {
		return apperrors.NewValidationError("date is required")
	}
	return nil
}
