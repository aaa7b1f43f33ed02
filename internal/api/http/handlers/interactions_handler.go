package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sales-tracker/internal/api/dto"
	"github.com/spec-kit/sales-tracker/internal/auth"
	"github.com/spec-kit/sales-tracker/internal/domain"
	"github.com/spec-kit/sales-tracker/internal/service"
	apperrors "github.com/spec-kit/sales-tracker/pkg/util/errorutil"
)

// InteractionsHandler exposes the call history. Interactions are
// append-only; the one mutation is the supervisor comment path.
type InteractionsHandler struct {
	interactions *service.InteractionService
	customers    *service.CustomerService
}

// NewInteractionsHandler constructs handler.
func NewInteractionsHandler(interactions *service.InteractionService, customers *service.CustomerService) *InteractionsHandler {
	return &InteractionsHandler{interactions: interactions, customers: customers}
}

// List handles GET /api/interactions. ?customerId= scopes to one
// customer's history (agents only for customers they own); otherwise
// agents get their own interactions and supervisors/admins get the
// denormalized details view.
func (h *InteractionsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	if customerID := c.Query("customerId"); customerID != "" {
		if err := checkID(customerID); err != nil {
			return err
		}
		customer, err := h.customers.GetByID(c.UserContext(), customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperrors.NewNotFound("Customer")
		}
		if !principal.Owns(customer.AgentID) {
			return apperrors.NewForbidden("Forbidden")
		}
		interactions, err := h.interactions.ListByCustomer(c.UserContext(), customerID)
		if err != nil {
			return err
		}
		return respondData(c, interactions)
	}

	if principal.IsAgent() {
		interactions, err := h.interactions.ListByAgent(c.UserContext(), principal.User.ID)
		if err != nil {
			return err
		}
		return respondData(c, interactions)
	}

	details, err := h.interactions.ListWithDetails(c.UserContext())
	if err != nil {
		return err
	}
	return respondData(c, details)
}

// Create handles POST /api/interactions. Agents record against themselves;
// admins may record on behalf of any agent. Supervisors cannot create.
func (h *InteractionsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}
	if principal.Role != domain.RoleAgent && principal.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("Forbidden")
	}

	var req dto.InteractionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid payload")
	}
	if principal.IsAgent() {
		req.AgentID = principal.User.ID
	}

	interaction, err := h.interactions.Record(c.UserContext(), service.InteractionRecordInput{
		CustomerID:     req.CustomerID,
		AgentID:        req.AgentID,
		CallDuration:   req.CallDuration,
		FollowUpStatus: req.FollowUpStatus,
		CallStatus:     req.CallStatus,
		Note:           req.Note,
		Date:           req.Date,
	})
	if err != nil {
		return err
	}
	return respondMessage(c, interaction, "Interaction recorded successfully")
}

// Comment handles PUT /api/interactions (supervisor/admin only), touching
// nothing but the supervisor comment.
func (h *InteractionsHandler) Comment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	var req dto.InteractionCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid payload")
	}
	if req.ID == "" {
		return apperrors.NewBadRequest("Interaction ID is required")
	}
	if err := checkID(req.ID); err != nil {
		return err
	}

	// An absent supervisorComment leaves the stored comment untouched;
	// only an explicit value (including "") overwrites it.
	if req.SupervisorComment == nil {
		interaction, err := h.interactions.GetByID(c.UserContext(), req.ID)
		if err != nil {
			return err
		}
		if interaction == nil {
			return apperrors.NewNotFound("Interaction")
		}
		return respondMessage(c, interaction, "Interaction updated successfully")
	}

	interaction, err := h.interactions.Comment(c.UserContext(), req.ID, *req.SupervisorComment, principal.User.ID)
	if err != nil {
		return err
	}
	if interaction == nil {
		return apperrors.NewNotFound("Interaction")
	}
	return respondMessage(c, interaction, "Interaction updated successfully")
}
