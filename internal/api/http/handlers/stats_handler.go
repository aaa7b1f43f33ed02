package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sales-tracker/internal/service"
)

// StatsHandler exposes the supervisor/admin aggregate reads. Role gating
// happens in the route registration.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// AgentStats handles GET /api/agent-stats.
func (h *StatsHandler) AgentStats(c *fiber.Ctx) error {
	counts, err := h.stats.CustomerCountByAgent(c.UserContext())
	if err != nil {
		return err
	}
	return respondData(c, counts)
}

// PendingFollowUps handles GET /api/pending-follow-ups.
func (h *StatsHandler) PendingFollowUps(c *fiber.Ctx) error {
	counts, err := h.stats.PendingFollowUpsByAgent(c.UserContext())
	if err != nil {
		return err
	}
	return respondData(c, counts)
}
