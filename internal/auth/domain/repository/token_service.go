package repository

import (
	"context"

	"wastetrack/internal/auth/domain/model"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService defines the interface for token operations
type TokenService interface {
	GenerateToken(ctx context.Context, userID, email string, role model.Role, cityID string) (string, error)
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the JWT claims carried by an access token. The claims are
// the "principal" seen by the rest of the system.
type Claims struct {
	UserID string     `json:"userID"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
	CityID string     `json:"cityId,omitempty"`
	jwt.RegisteredClaims
}

// HasRole reports whether the principal holds the given role.
func (c *Claims) HasRole(role model.Role) bool {
	return c.Role == role
}

// HasAnyRole reports whether the principal holds one of the given roles.
func (c *Claims) HasAnyRole(roles ...model.Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}
