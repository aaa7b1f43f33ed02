package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	apperrors "github.com/spec-kit/sales-tracker/pkg/util/errorutil"
)

// respondData renders the success envelope around a payload.
func respondData(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// respondMessage renders the success envelope with payload and message.
func respondMessage(c *fiber.Ctx, data any, message string) error {
	return c.JSON(fiber.Map{"success": true, "data": data, "message": message})
}

// checkID rejects identifiers that are not UUIDs before they reach the
// store, mirroring the object-id check the API has always done.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewBadRequest("Invalid id")
	}
	return nil
}
