package http

import (
	"errors"

	apperrors "wastetrack/internal/shared/errors"
	"wastetrack/internal/waste/domain/model"
	"wastetrack/internal/waste/usecase"

	"github.com/gofiber/fiber/v2"
)

// respondError translates domain and usecase errors into the API error
// contract. Validation failures return the full list of violations; typed
// application errors carry their own status code; anything unrecognized
// becomes a generic 500 so storage errors never leak.
func respondError(c *fiber.Ctx, err error) error {
	var ve *apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid configuration",
			"errors":  ve.Messages(),
		})
	}

	switch {
	case errors.Is(err, model.ErrNoActiveConfig),
		errors.Is(err, model.ErrConfigNotFound),
		errors.Is(err, model.ErrBinNotFound),
		errors.Is(err, model.ErrTruckNotFound),
		errors.Is(err, model.ErrRouteNotFound),
		errors.Is(err, model.ErrCollectionRecordNotFound),
		errors.Is(err, model.ErrBillingNotFound),
		errors.Is(err, model.ErrWasteRequestNotFound),
		errors.Is(err, model.ErrInquiryNotFound),
		errors.Is(err, model.ErrAnnouncementNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})

	case errors.Is(err, usecase.ErrNotRequestOwner):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": err.Error()})

	case errors.Is(err, model.ErrConfigVersionConflict),
		errors.Is(err, usecase.ErrRequestNotPending),
		errors.Is(err, usecase.ErrEmptyResponse):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// Typed errors from the models and repositories carry a client-safe
	// message and status. Server-side types stay opaque.
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode < fiber.StatusInternalServerError {
		return c.Status(appErr.HTTPCode).JSON(fiber.Map{"message": appErr.Message})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}
