package http

import (
	authhttp "wastetrack/internal/auth/adapter/http"
	authmodel "wastetrack/internal/auth/domain/model"
	authrepo "wastetrack/internal/auth/domain/repository"
	"wastetrack/internal/waste/domain/model"
	"wastetrack/internal/waste/usecase"

	"github.com/gofiber/fiber/v2"
)

// CommunityHTTPHandler handles HTTP requests for waste requests, inquiries
// and announcements
type CommunityHTTPHandler struct {
	usecase usecase.CommunityUsecaseInterface
}

// NewCommunityHTTPHandler creates a new community HTTP handler
func NewCommunityHTTPHandler(uc usecase.CommunityUsecaseInterface) *CommunityHTTPHandler {
	return &CommunityHTTPHandler{usecase: uc}
}

// SetupRoutes registers community routes. Requests and inquiries are filed
// by householders; announcements are written by admins and readable without
// authentication.
func (h *CommunityHTTPHandler) SetupRoutes(router fiber.Router, middleware *authhttp.AuthMiddleware) {
	staff := middleware.RequireRole(authmodel.RoleAdmin, authmodel.RoleDispatcher)

	requests := router.Group("/requests", middleware.Protect())
	requests.Post("/", h.CreateRequest)
	requests.Get("/", h.ListRequests)
	requests.Get("/:id", h.GetRequest)
	requests.Put("/:id", h.UpdateRequest)
	requests.Patch("/:id", staff, h.SetRequestStatus)
	requests.Delete("/:id", h.CancelRequest)

	inquiries := router.Group("/inquiries", middleware.Protect())
	inquiries.Post("/", h.CreateInquiry)
	inquiries.Get("/", h.ListInquiries)
	inquiries.Get("/:id", h.GetInquiry)
	inquiries.Patch("/:id", staff, h.RespondToInquiry)
	inquiries.Delete("/:id", middleware.RequireRole(authmodel.RoleAdmin), h.DeleteInquiry)

	announcements := router.Group("/announcements")
	announcements.Get("/", h.ListAnnouncements)
	announcements.Get("/recent", h.RecentAnnouncements)
	announcements.Get("/:id", h.GetAnnouncement)

	adminAnnouncements := announcements.Group("", middleware.Protect(), middleware.RequireRole(authmodel.RoleAdmin))
	adminAnnouncements.Post("/", h.CreateAnnouncement)
	adminAnnouncements.Put("/:id", h.UpdateAnnouncement)
	adminAnnouncements.Delete("/:id", h.DeleteAnnouncement)
}

// CreateRequest files an ad-hoc pickup request for the authenticated user
func (h *CommunityHTTPHandler) CreateRequest(c *fiber.Ctx) error {
	var req model.WasteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	claims := c.Locals("claims").(*authrepo.Claims)
	req.UserID = claims.UserID

	created, err := h.usecase.CreateRequest(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListRequests returns waste requests. Householders only ever see their own.
func (h *CommunityHTTPHandler) ListRequests(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*authrepo.Claims)

	userID := c.Query("userId")
	if claims.Role == authmodel.RoleHouseholder {
		userID = claims.UserID
	}

	requests, err := h.usecase.ListRequests(c.Context(), userID, model.RequestStatus(c.Query("status")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(requests)
}

// GetRequest returns a single waste request
func (h *CommunityHTTPHandler) GetRequest(c *fiber.Ctx) error {
	req, err := h.usecase.GetRequest(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	claims := c.Locals("claims").(*authrepo.Claims)
	if claims.Role == authmodel.RoleHouseholder && req.UserID != claims.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
	}
	return c.JSON(req)
}

// UpdateRequest lets a householder edit their own pending request
func (h *CommunityHTTPHandler) UpdateRequest(c *fiber.Ctx) error {
	var req model.WasteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	req.ID = c.Params("id")

	claims := c.Locals("claims").(*authrepo.Claims)
	updated, err := h.usecase.UpdateOwnRequest(c.Context(), claims.UserID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// SetRequestStatus moves a request through its life. Staff only.
func (h *CommunityHTTPHandler) SetRequestStatus(c *fiber.Ctx) error {
	var body struct {
		Status model.RequestStatus `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil || body.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "status is required"})
	}

	req, err := h.usecase.SetRequestStatus(c.Context(), c.Params("id"), body.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(req)
}

// CancelRequest withdraws the caller's own pending request
func (h *CommunityHTTPHandler) CancelRequest(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*authrepo.Claims)
	if err := h.usecase.CancelOwnRequest(c.Context(), claims.UserID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Request cancelled successfully"})
}

// CreateInquiry files a question or complaint for the authenticated user
func (h *CommunityHTTPHandler) CreateInquiry(c *fiber.Ctx) error {
	var inq model.Inquiry
	if err := c.BodyParser(&inq); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	claims := c.Locals("claims").(*authrepo.Claims)
	inq.UserID = claims.UserID

	created, err := h.usecase.CreateInquiry(c.Context(), &inq)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListInquiries returns inquiries. Householders only ever see their own.
func (h *CommunityHTTPHandler) ListInquiries(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*authrepo.Claims)

	userID := c.Query("userId")
	if claims.Role == authmodel.RoleHouseholder {
		userID = claims.UserID
	}

	inquiries, err := h.usecase.ListInquiries(c.Context(), userID, model.InquiryStatus(c.Query("status")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inquiries)
}

// GetInquiry returns a single inquiry
func (h *CommunityHTTPHandler) GetInquiry(c *fiber.Ctx) error {
	inq, err := h.usecase.GetInquiry(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	claims := c.Locals("claims").(*authrepo.Claims)
	if claims.Role == authmodel.RoleHouseholder && inq.UserID != claims.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
	}
	return c.JSON(inq)
}

// RespondToInquiry records a staff answer
func (h *CommunityHTTPHandler) RespondToInquiry(c *fiber.Ctx) error {
	var body struct {
		Response string `json:"response"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	inq, err := h.usecase.RespondToInquiry(c.Context(), c.Params("id"), body.Response)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inq)
}

// DeleteInquiry removes an inquiry
func (h *CommunityHTTPHandler) DeleteInquiry(c *fiber.Ctx) error {
	if err := h.usecase.DeleteInquiry(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Inquiry deleted successfully"})
}

// CreateAnnouncement publishes a notice
func (h *CommunityHTTPHandler) CreateAnnouncement(c *fiber.Ctx) error {
	var ann model.Announcement
	if err := c.BodyParser(&ann); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	created, err := h.usecase.CreateAnnouncement(c.Context(), &ann)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListAnnouncements returns announcements, active and unexpired by default.
// ?all=true includes deactivated and expired ones for staff dashboards.
func (h *CommunityHTTPHandler) ListAnnouncements(c *fiber.Ctx) error {
	activeOnly := c.Query("all") != "true"

	announcements, err := h.usecase.ListAnnouncements(c.Context(), activeOnly)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(announcements)
}

// RecentAnnouncements returns the five newest active announcements, for the
// public landing page.
func (h *CommunityHTTPHandler) RecentAnnouncements(c *fiber.Ctx) error {
	announcements, err := h.usecase.ListAnnouncements(c.Context(), true)
	if err != nil {
		return respondError(c, err)
	}
	if len(announcements) > 5 {
		announcements = announcements[:5]
	}
	return c.JSON(announcements)
}

// GetAnnouncement returns a single announcement
func (h *CommunityHTTPHandler) GetAnnouncement(c *fiber.Ctx) error {
	ann, err := h.usecase.GetAnnouncement(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ann)
}

// UpdateAnnouncement applies changes to an announcement
func (h *CommunityHTTPHandler) UpdateAnnouncement(c *fiber.Ctx) error {
	var ann model.Announcement
	if err := c.BodyParser(&ann); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	ann.ID = c.Params("id")

	updated, err := h.usecase.UpdateAnnouncement(c.Context(), &ann)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// DeleteAnnouncement removes an announcement
func (h *CommunityHTTPHandler) DeleteAnnouncement(c *fiber.Ctx) error {
	if err := h.usecase.DeleteAnnouncement(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Announcement deleted successfully"})
}
