package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sales-tracker/internal/service"
)

// SeedHandler exposes the bootstrap endpoint a fresh deployment hits once.
type SeedHandler struct {
	seed *service.SeedService
}

// NewSeedHandler constructs handler.
func NewSeedHandler(seed *service.SeedService) *SeedHandler {
	return &SeedHandler{seed: seed}
}

// Init handles GET /api/init.
func (h *SeedHandler) Init(c *fiber.Ctx) error {
	result, err := h.seed.Seed(c.UserContext())
	if errors.Is(err, service.ErrAlreadySeeded) {
		return c.JSON(fiber.Map{"success": false, "message": "Database already initialized"})
	}
	if err != nil {
		return err
	}
	return respondMessage(c, result, "Database initialized with sample data")
}
