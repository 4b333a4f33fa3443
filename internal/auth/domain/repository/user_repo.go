package repository

import (
	"context"

	"wastetrack/internal/auth/domain/model"
)

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	SetActive(ctx context.Context, id string, active bool) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
}
