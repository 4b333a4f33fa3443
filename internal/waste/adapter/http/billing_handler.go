package http

import (
	authhttp "wastetrack/internal/auth/adapter/http"
	authmodel "wastetrack/internal/auth/domain/model"
	authrepo "wastetrack/internal/auth/domain/repository"
	"wastetrack/internal/waste/domain/model"
	"wastetrack/internal/waste/domain/repository"
	"wastetrack/internal/waste/usecase"

	"github.com/gofiber/fiber/v2"
)

// BillingHTTPHandler handles HTTP requests for monthly bills
type BillingHTTPHandler struct {
	usecase usecase.BillingUsecaseInterface
}

// NewBillingHTTPHandler creates a new billing HTTP handler
func NewBillingHTTPHandler(uc usecase.BillingUsecaseInterface) *BillingHTTPHandler {
	return &BillingHTTPHandler{usecase: uc}
}

// SetupRoutes registers billing routes. Householders see and pay their own
// bills; deletion is admin-only.
func (h *BillingHTTPHandler) SetupRoutes(router fiber.Router, middleware *authhttp.AuthMiddleware) {
	billings := router.Group("/billings", middleware.Protect())
	billings.Get("/", h.ListBillings)
	billings.Get("/:id", h.GetBilling)
	billings.Patch("/:id/pay", h.PayBilling)
	billings.Delete("/:id", middleware.RequireRole(authmodel.RoleAdmin), h.DeleteBilling)
}

// ListBillings returns bills. Householders only ever see their own.
func (h *BillingHTTPHandler) ListBillings(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*authrepo.Claims)

	filter := repository.BillingFilter{
		CityID:        c.Query("cityId"),
		HouseholderID: c.Query("householderId"),
		Month:         c.Query("month"),
		PaymentStatus: model.PaymentStatus(c.Query("status")),
	}
	if claims.Role == authmodel.RoleHouseholder {
		filter.HouseholderID = claims.UserID
	}

	bills, err := h.usecase.ListBillings(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bills)
}

// GetBilling returns a single bill
func (h *BillingHTTPHandler) GetBilling(c *fiber.Ctx) error {
	bill, err := h.usecase.GetBilling(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	claims := c.Locals("claims").(*authrepo.Claims)
	if claims.Role == authmodel.RoleHouseholder && bill.HouseholderID != claims.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
	}
	return c.JSON(bill)
}

// PayBilling settles a bill. Householders may only pay their own.
func (h *BillingHTTPHandler) PayBilling(c *fiber.Ctx) error {
	var body struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	bill, err := h.usecase.GetBilling(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	claims := c.Locals("claims").(*authrepo.Claims)
	if claims.Role == authmodel.RoleHouseholder && bill.HouseholderID != claims.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
	}

	paid, err := h.usecase.MarkPaid(c.Context(), c.Params("id"), body.PaymentMethod)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(paid)
}

// DeleteBilling removes a bill
func (h *BillingHTTPHandler) DeleteBilling(c *fiber.Ctx) error {
	if err := h.usecase.DeleteBilling(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Billing record deleted successfully"})
}
