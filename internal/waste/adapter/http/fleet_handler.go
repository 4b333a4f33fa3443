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

// FleetHTTPHandler handles HTTP requests for bins, trucks, routes and
// collection records
type FleetHTTPHandler struct {
	usecase usecase.FleetUsecaseInterface
}

// NewFleetHTTPHandler creates a new fleet HTTP handler
func NewFleetHTTPHandler(uc usecase.FleetUsecaseInterface) *FleetHTTPHandler {
	return &FleetHTTPHandler{usecase: uc}
}

// SetupRoutes registers fleet routes. Bins, trucks and routes are mutated by
// admins and dispatchers; collection records are written by collectors.
func (h *FleetHTTPHandler) SetupRoutes(router fiber.Router, middleware *authhttp.AuthMiddleware) {
	staff := middleware.RequireRole(authmodel.RoleAdmin, authmodel.RoleDispatcher)

	bins := router.Group("/bins", middleware.Protect())
	bins.Post("/", staff, h.CreateBin)
	bins.Get("/", h.ListBins)
	bins.Get("/:id", h.GetBin)
	bins.Put("/:id", staff, h.UpdateBin)
	bins.Delete("/:id", staff, h.DeleteBin)

	trucks := router.Group("/trucks", middleware.Protect(), staff)
	trucks.Post("/", h.CreateTruck)
	trucks.Get("/", h.ListTrucks)
	trucks.Get("/:id", h.GetTruck)
	trucks.Put("/:id", h.UpdateTruck)
	trucks.Delete("/:id", h.DeleteTruck)

	routes := router.Group("/routes", middleware.Protect())
	routes.Post("/", staff, h.CreateRoute)
	routes.Get("/", h.ListRoutes)
	routes.Get("/:id", h.GetRoute)
	routes.Put("/:id", staff, h.UpdateRoute)
	routes.Delete("/:id", staff, h.DeleteRoute)

	records := router.Group("/collections", middleware.Protect())
	records.Post("/", middleware.RequireRole(authmodel.RoleCollector), h.RecordCollection)
	records.Get("/", h.ListRecords)
	records.Get("/:id", h.GetRecord)
	records.Put("/:id", staff, h.UpdateRecord)
}

// CreateBin registers a new bin
func (h *FleetHTTPHandler) CreateBin(c *fiber.Ctx) error {
	var bin model.Bin
	if err := c.BodyParser(&bin); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	created, err := h.usecase.CreateBin(c.Context(), &bin)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListBins returns bins. Householders only ever see their own.
func (h *FleetHTTPHandler) ListBins(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*authrepo.Claims)

	filter := repository.BinFilter{
		CityID:        c.Query("cityId"),
		Zone:          c.Query("zone"),
		HouseholderID: c.Query("householderId"),
		Status:        model.BinStatus(c.Query("status")),
	}
	if claims.Role == authmodel.RoleHouseholder {
		filter.HouseholderID = claims.UserID
	}

	bins, err := h.usecase.ListBins(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bins)
}

// GetBin returns a single bin
func (h *FleetHTTPHandler) GetBin(c *fiber.Ctx) error {
	bin, err := h.usecase.GetBin(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bin)
}

// UpdateBin applies changes to a bin
func (h *FleetHTTPHandler) UpdateBin(c *fiber.Ctx) error {
	var bin model.Bin
	if err := c.BodyParser(&bin); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	bin.ID = c.Params("id")

	updated, err := h.usecase.UpdateBin(c.Context(), &bin)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// DeleteBin removes a bin
func (h *FleetHTTPHandler) DeleteBin(c *fiber.Ctx) error {
	if err := h.usecase.DeleteBin(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Bin deleted successfully"})
}

// CreateTruck registers a new truck
func (h *FleetHTTPHandler) CreateTruck(c *fiber.Ctx) error {
	var truck model.Truck
	if err := c.BodyParser(&truck); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	created, err := h.usecase.CreateTruck(c.Context(), &truck)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListTrucks returns trucks, optionally filtered by city and status
func (h *FleetHTTPHandler) ListTrucks(c *fiber.Ctx) error {
	trucks, err := h.usecase.ListTrucks(c.Context(), c.Query("cityId"), model.TruckStatus(c.Query("status")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(trucks)
}

// GetTruck returns a single truck
func (h *FleetHTTPHandler) GetTruck(c *fiber.Ctx) error {
	truck, err := h.usecase.GetTruck(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(truck)
}

// UpdateTruck applies changes to a truck
func (h *FleetHTTPHandler) UpdateTruck(c *fiber.Ctx) error {
	var truck model.Truck
	if err := c.BodyParser(&truck); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	truck.ID = c.Params("id")

	updated, err := h.usecase.UpdateTruck(c.Context(), &truck)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// DeleteTruck removes a truck
func (h *FleetHTTPHandler) DeleteTruck(c *fiber.Ctx) error {
	if err := h.usecase.DeleteTruck(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Truck deleted successfully"})
}

// CreateRoute schedules a collection route
func (h *FleetHTTPHandler) CreateRoute(c *fiber.Ctx) error {
	var route model.Route
	if err := c.BodyParser(&route); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	created, err := h.usecase.CreateRoute(c.Context(), &route)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListRoutes returns routes, optionally filtered by status
func (h *FleetHTTPHandler) ListRoutes(c *fiber.Ctx) error {
	routes, err := h.usecase.ListRoutes(c.Context(), model.RouteStatus(c.Query("status")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(routes)
}

// GetRoute returns a single route
func (h *FleetHTTPHandler) GetRoute(c *fiber.Ctx) error {
	route, err := h.usecase.GetRoute(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(route)
}

// UpdateRoute applies changes to a route
func (h *FleetHTTPHandler) UpdateRoute(c *fiber.Ctx) error {
	var route model.Route
	if err := c.BodyParser(&route); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	route.ID = c.Params("id")

	updated, err := h.usecase.UpdateRoute(c.Context(), &route)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// DeleteRoute removes a route
func (h *FleetHTTPHandler) DeleteRoute(c *fiber.Ctx) error {
	if err := h.usecase.DeleteRoute(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Route deleted successfully"})
}

// RecordCollection stores one pickup. The collector comes from the token.
func (h *FleetHTTPHandler) RecordCollection(c *fiber.Ctx) error {
	var rec model.CollectionRecord
	if err := c.BodyParser(&rec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	claims := c.Locals("claims").(*authrepo.Claims)
	rec.CollectorID = claims.UserID

	created, err := h.usecase.RecordCollection(c.Context(), &rec)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListRecords returns collection records. Householders and collectors only
// ever see their own.
func (h *FleetHTTPHandler) ListRecords(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*authrepo.Claims)

	filter := repository.RecordFilter{
		CityID:        c.Query("cityId"),
		RouteID:       c.Query("routeId"),
		CollectorID:   c.Query("collectorId"),
		HouseholderID: c.Query("householderId"),
	}
	switch claims.Role {
	case authmodel.RoleHouseholder:
		filter.HouseholderID = claims.UserID
	case authmodel.RoleCollector:
		filter.CollectorID = claims.UserID
	}

	records, err := h.usecase.ListRecords(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(records)
}

// GetRecord returns a single collection record
func (h *FleetHTTPHandler) GetRecord(c *fiber.Ctx) error {
	rec, err := h.usecase.GetRecord(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}

// UpdateRecord applies corrections to a stored record
func (h *FleetHTTPHandler) UpdateRecord(c *fiber.Ctx) error {
	var rec model.CollectionRecord
	if err := c.BodyParser(&rec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	rec.ID = c.Params("id")

	updated, err := h.usecase.UpdateRecord(c.Context(), &rec)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}
