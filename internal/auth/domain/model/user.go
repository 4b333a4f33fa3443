package model

import (
	"errors"
	"strings"
	"time"

	apperrors "wastetrack/internal/shared/errors"
)

// Role identifies what a principal is allowed to do.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleDispatcher  Role = "dispatcher"
	RoleCollector   Role = "collector"
	RoleHouseholder Role = "householder"
)

// ValidRoles lists every role the system accepts.
var ValidRoles = []Role{RoleAdmin, RoleDispatcher, RoleCollector, RoleHouseholder}

// IsValidRole reports whether r is a known role.
func IsValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if v == r {
			return true
		}
	}
	return false
}

var (
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
)

// User represents an account in the system. Householders raise requests and
// receive bills; collectors record pickups; dispatchers run the fleet; admins
// own city configuration and user management.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Address      string    `json:"address" bson:"address"`
	Phone        string    `json:"phone" bson:"phone"`
	Role         Role      `json:"role" bson:"role"`
	CityID       string    `json:"cityId,omitempty" bson:"cityId,omitempty"`
	IsActive     bool      `json:"isActive" bson:"isActive"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

// ValidateFields checks the required account fields.
func (u *User) ValidateFields() error {
	if strings.TrimSpace(u.Name) == "" {
		return apperrors.NewValidationError("name is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return apperrors.NewValidationError("email is required")
	}
	if strings.TrimSpace(u.Address) == "" {
		return apperrors.NewValidationError("address is required")
	}
	if strings.TrimSpace(u.Phone) == "" {
		return apperrors.NewValidationError("phone number is required")
	}
	if !IsValidRole(u.Role) {
		return apperrors.NewValidationError("invalid role specified")
	}
	return nil
}
