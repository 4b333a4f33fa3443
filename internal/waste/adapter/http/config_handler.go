package http

import (
	authhttp "wastetrack/internal/auth/adapter/http"
	authmodel "wastetrack/internal/auth/domain/model"
	authrepo "wastetrack/internal/auth/domain/repository"
	"wastetrack/internal/waste/domain/model"
	"wastetrack/internal/waste/usecase"

	"github.com/gofiber/fiber/v2"
)

// ConfigHTTPHandler handles HTTP requests for city-configuration versioning
type ConfigHTTPHandler struct {
	usecase usecase.CityConfigUsecaseInterface
}

// NewConfigHTTPHandler creates a new configuration HTTP handler
func NewConfigHTTPHandler(uc usecase.CityConfigUsecaseInterface) *ConfigHTTPHandler {
	return &ConfigHTTPHandler{usecase: uc}
}

// SetupRoutes registers the configuration routes. Every operation is
// admin-only.
func (h *ConfigHTTPHandler) SetupRoutes(router fiber.Router, middleware *authhttp.AuthMiddleware) {
	configs := router.Group("/configs", middleware.Protect(), middleware.RequireRole(authmodel.RoleAdmin))
	configs.Post("/", h.CreateConfig)
	configs.Get("/", h.ListConfigs)
	configs.Get("/:cityId", h.GetActiveConfig)
	configs.Put("/:cityId", h.UpdateConfig)
	configs.Get("/:cityId/versions", h.ListVersions)
	configs.Patch("/:id", h.ToggleActive)
	configs.Delete("/:id", h.DeleteConfig)
}

// CreateConfig publishes a configuration version for a city
func (h *ConfigHTTPHandler) CreateConfig(c *fiber.Ctx) error {
	var draft model.ConfigDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	claims := c.Locals("claims").(*authrepo.Claims)
	cfg, err := h.usecase.Create(c.Context(), draft, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cfg)
}

// UpdateConfig appends a new version for an existing city. The city comes
// from the URL.
func (h *ConfigHTTPHandler) UpdateConfig(c *fiber.Ctx) error {
	var draft model.ConfigDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	claims := c.Locals("claims").(*authrepo.Claims)
	cfg, err := h.usecase.Update(c.Context(), c.Params("cityId"), draft, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cfg)
}

// GetActiveConfig returns the city's single active configuration
func (h *ConfigHTTPHandler) GetActiveConfig(c *fiber.Ctx) error {
	cfg, err := h.usecase.GetActive(c.Context(), c.Params("cityId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cfg)
}

// ListConfigs returns every configuration across all cities, inactive
// versions included, for the administrative overview
func (h *ConfigHTTPHandler) ListConfigs(c *fiber.Ctx) error {
	configs, err := h.usecase.ListAll(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(configs)
}

// ListVersions returns a city's full version history
func (h *ConfigHTTPHandler) ListVersions(c *fiber.Ctx) error {
	versions, err := h.usecase.ListVersions(c.Context(), c.Params("cityId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(versions)
}

// ToggleActive flips one version's active flag
func (h *ConfigHTTPHandler) ToggleActive(c *fiber.Ctx) error {
	var body struct {
		IsActive *bool `json:"isActive"`
	}
	if err := c.BodyParser(&body); err != nil || body.IsActive == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "isActive is required",
		})
	}

	cfg, err := h.usecase.ToggleActive(c.Context(), c.Params("id"), *body.IsActive)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cfg)
}

// DeleteConfig removes a single configuration version
func (h *ConfigHTTPHandler) DeleteConfig(c *fiber.Ctx) error {
	if err := h.usecase.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Configuration deleted successfully"})
}
