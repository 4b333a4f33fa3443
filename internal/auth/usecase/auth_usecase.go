package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"wastetrack/internal/auth/config"
	"wastetrack/internal/auth/domain/model"
	"wastetrack/internal/auth/domain/repository"
	apperrors "wastetrack/internal/shared/errors"
	"wastetrack/internal/shared/eventbus"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrInvalidRole        = errors.New("invalid role specified")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrAccountDeactivated = errors.New("your account has been deactivated, please contact support")
)

const minPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AuthUsecaseInterface defines the contract for authentication and user
// management use cases.
type AuthUsecaseInterface interface {
	Register(ctx context.Context, req RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, req LoginRequest) (*model.User, string, error)
	ValidateToken(ctx context.Context, tokenString string) (*repository.Claims, error)
	GetUserFromToken(ctx context.Context, tokenString string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*model.User, error)

	// Administration
	CreateUser(ctx context.Context, req RegisterRequest) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	UpdateUser(ctx context.Context, userID string, req UpdateProfileRequest) (*model.User, error)
	SetUserActive(ctx context.Context, userID string, active bool) (*model.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// RegisterRequest represents a registration or admin create-user request
type RegisterRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Address  string     `json:"address"`
	Phone    string     `json:"phone"`
	Role     model.Role `json:"role,omitempty"`
	CityID   string     `json:"cityId,omitempty"`
	IsActive *bool      `json:"isActive,omitempty"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries the mutable account fields. Nil pointers mean
// "leave unchanged".
type UpdateProfileRequest struct {
	Name     *string     `json:"name,omitempty"`
	Email    *string     `json:"email,omitempty"`
	Password *string     `json:"password,omitempty"`
	Address  *string     `json:"address,omitempty"`
	Phone    *string     `json:"phone,omitempty"`
	Role     *model.Role `json:"role,omitempty"`
	CityID   *string     `json:"cityId,omitempty"`
	IsActive *bool       `json:"isActive,omitempty"`
}

// AuthUsecase implements the authentication logic.
type AuthUsecase struct {
	repo     repository.UserRepository
	tokenSvc repository.TokenService
	eventBus eventbus.EventBusInterface
	config   *config.Config
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	repo repository.UserRepository,
	tokenSvc repository.TokenService,
	bus eventbus.EventBusInterface,
	cfg *config.Config,
) *AuthUsecase {
	return &AuthUsecase{
		repo:     repo,
		tokenSvc: tokenSvc,
		eventBus: bus,
		config:   cfg,
	}
}

func (uc *AuthUsecase) validateEmail(email string) error {
	if email == "" {
		return apperrors.NewValidationError("email is required")
	}
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmailFormat
	}
	return nil
}

func (uc *AuthUsecase) validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	return nil
}

func (uc *AuthUsecase) bcryptCost() int {
	if uc.config != nil && uc.config.BcryptCost > 0 {
		return uc.config.BcryptCost
	}
	return bcrypt.DefaultCost
}

func (uc *AuthUsecase) buildUser(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if err := uc.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := uc.validatePassword(req.Password); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleHouseholder
	}
	if !model.IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := uc.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), uc.bcryptCost())
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Address:      strings.TrimSpace(req.Address),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
		CityID:       strings.TrimSpace(req.CityID),
		IsActive:     active,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := user.ValidateFields(); err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates a new account and issues a token for it.
func (uc *AuthUsecase) Register(ctx context.Context, req RegisterRequest) (*model.User, string, error) {
	user, err := uc.buildUser(ctx, req)
	if err != nil {
		return nil, "", err
	}

	if err := uc.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserExists) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := uc.tokenSvc.GenerateToken(ctx, user.ID, user.Email, user.Role, user.CityID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	user.PasswordHash = ""
	return user, token, nil
}

// Login authenticates an account. Deactivated accounts are rejected before
// the password is checked against the stored hash.
func (uc *AuthUsecase) Login(ctx context.Context, req LoginRequest) (*model.User, string, error) {
	if req.Email == "" || req.Password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := uc.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsActive {
		return nil, "", ErrAccountDeactivated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := uc.tokenSvc.GenerateToken(ctx, user.ID, user.Email, user.Role, user.CityID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	user.PasswordHash = ""
	uc.eventBus.PublishAndForget(ctx, eventbus.NewBasicEvent(eventbus.EventTypeUserAuthenticated, user))
	return user, token, nil
}

// ValidateToken validates a JWT string
func (uc *AuthUsecase) ValidateToken(ctx context.Context, tokenString string) (*repository.Claims, error) {
	claims, err := uc.tokenSvc.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// GetUserFromToken validates a token and fetches the associated account.
// Tokens belonging to deactivated accounts are rejected.
func (uc *AuthUsecase) GetUserFromToken(ctx context.Context, tokenString string) (*model.User, error) {
	claims, err := uc.tokenSvc.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	user, err := uc.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile applies a self-service profile update. Role and active flag
// changes are ignored here; those go through the admin operations.
func (uc *AuthUsecase) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*model.User, error) {
	req.Role = nil
	req.IsActive = nil
	return uc.UpdateUser(ctx, userID, req)
}

// CreateUser creates an account on behalf of an administrator, without
// issuing a token.
func (uc *AuthUsecase) CreateUser(ctx context.Context, req RegisterRequest) (*model.User, error) {
	user, err := uc.buildUser(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// ListUsers returns all accounts, newest first, without password hashes.
func (uc *AuthUsecase) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := uc.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for _, u := range users {
		u.PasswordHash = ""
	}
	return users, nil
}

// GetUserByID retrieves an account by ID
func (uc *AuthUsecase) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user ID is required")
	}

	user, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user.PasswordHash = ""
	return user, nil
}

// UpdateUser applies the provided field changes to an account.
func (uc *AuthUsecase) UpdateUser(ctx context.Context, userID string, req UpdateProfileRequest) (*model.User, error) {
	user, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if err := uc.validateEmail(email); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if req.Password != nil {
		if err := uc.validatePassword(*req.Password); err != nil {
			return nil, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), uc.bcryptCost())
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}
	if req.Address != nil {
		user.Address = strings.TrimSpace(*req.Address)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Role != nil {
		if !model.IsValidRole(*req.Role) {
			return nil, ErrInvalidRole
		}
		user.Role = *req.Role
	}
	if req.CityID != nil {
		user.CityID = strings.TrimSpace(*req.CityID)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := user.ValidateFields(); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserExists) {
			return nil, ErrEmailTaken
		}
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// SetUserActive toggles the account's active flag.
func (uc *AuthUsecase) SetUserActive(ctx context.Context, userID string, active bool) (*model.User, error) {
	user, err := uc.repo.SetActive(ctx, userID, active)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to toggle user status: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// DeleteUser removes an account permanently.
func (uc *AuthUsecase) DeleteUser(ctx context.Context, userID string) error {
	if err := uc.repo.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// Ensure AuthUsecase implements AuthUsecaseInterface
var _ AuthUsecaseInterface = (*AuthUsecase)(nil)
