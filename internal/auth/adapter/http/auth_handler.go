package http

import (
	"errors"

	"wastetrack/internal/auth/domain/model"
	"wastetrack/internal/auth/domain/repository"
	"wastetrack/internal/auth/usecase"
	apperrors "wastetrack/internal/shared/errors"

	"github.com/gofiber/fiber/v2"
)

// AuthHTTPHandler handles HTTP requests for authentication and user management
type AuthHTTPHandler struct {
	usecase usecase.AuthUsecaseInterface
}

// NewAuthHTTPHandler creates a new authentication HTTP handler
func NewAuthHTTPHandler(uc usecase.AuthUsecaseInterface) *AuthHTTPHandler {
	return &AuthHTTPHandler{usecase: uc}
}

// SetupRoutes registers auth and user-management routes. Mutating user
// management is admin-only by policy.
func (h *AuthHTTPHandler) SetupRoutes(router fiber.Router, middleware *AuthMiddleware) {
	auth := router.Group("/auth")
	auth.Post("/register", middleware.RateLimiter(), h.Register)
	auth.Post("/login", middleware.RateLimiter(), h.Login)
	auth.Get("/me", middleware.Protect(), h.GetCurrentUser)
	auth.Put("/me", middleware.Protect(), h.UpdateCurrentUser)

	users := router.Group("/users", middleware.Protect(), middleware.RequireRole(model.RoleAdmin))
	users.Post("/", h.CreateUser)
	users.Get("/", h.ListUsers)
	users.Get("/:id", h.GetUser)
	users.Put("/:id", h.UpdateUser)
	users.Patch("/:id", h.ToggleUserActive)
	users.Delete("/:id", h.DeleteUser)
}

// Register handles self-service registration
func (h *AuthHTTPHandler) Register(c *fiber.Ctx) error {
	var req usecase.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	user, token, err := h.usecase.Register(c.Context(), req)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles user login
func (h *AuthHTTPHandler) Login(c *fiber.Ctx) error {
	var req usecase.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please provide email and password",
		})
	}

	user, token, err := h.usecase.Login(c.Context(), req)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// GetCurrentUser returns the authenticated principal's profile
func (h *AuthHTTPHandler) GetCurrentUser(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*repository.Claims)
	user, err := h.usecase.GetUserByID(c.Context(), claims.UserID)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(user)
}

// UpdateCurrentUser updates the authenticated principal's profile
func (h *AuthHTTPHandler) UpdateCurrentUser(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*repository.Claims)

	var req usecase.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	user, err := h.usecase.UpdateProfile(c.Context(), claims.UserID, req)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(user)
}

// CreateUser creates an account on behalf of an administrator
func (h *AuthHTTPHandler) CreateUser(c *fiber.Ctx) error {
	var req usecase.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	user, err := h.usecase.CreateUser(c.Context(), req)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// ListUsers returns all accounts
func (h *AuthHTTPHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.usecase.ListUsers(c.Context())
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(users)
}

// GetUser returns a single account by ID
func (h *AuthHTTPHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.usecase.GetUserByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser applies an admin update to an account
func (h *AuthHTTPHandler) UpdateUser(c *fiber.Ctx) error {
	var req usecase.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	user, err := h.usecase.UpdateUser(c.Context(), c.Params("id"), req)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(user)
}

// ToggleUserActive flips the account's active flag
func (h *AuthHTTPHandler) ToggleUserActive(c *fiber.Ctx) error {
	var body struct {
		IsActive *bool `json:"isActive"`
	}
	if err := c.BodyParser(&body); err != nil || body.IsActive == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "isActive is required",
		})
	}

	user, err := h.usecase.SetUserActive(c.Context(), c.Params("id"), *body.IsActive)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser removes an account
func (h *AuthHTTPHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.usecase.DeleteUser(c.Context(), c.Params("id")); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

func (h *AuthHTTPHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrAccountDeactivated),
		errors.Is(err, usecase.ErrTokenInvalid):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, usecase.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	case errors.Is(err, usecase.ErrEmailTaken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User already exists"})
	case errors.Is(err, usecase.ErrInvalidEmailFormat),
		errors.Is(err, usecase.ErrInvalidRole):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// Typed validation errors carry a client-safe message and status.
	// Anything else stays opaque so repository errors never leak.
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode < fiber.StatusInternalServerError {
		return c.Status(appErr.HTTPCode).JSON(fiber.Map{"message": appErr.Message})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}
