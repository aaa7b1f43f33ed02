package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sales-tracker/internal/api/dto"
	"github.com/spec-kit/sales-tracker/internal/auth"
	"github.com/spec-kit/sales-tracker/internal/domain"
	"github.com/spec-kit/sales-tracker/internal/repository"
	"github.com/spec-kit/sales-tracker/internal/service"
	apperrors "github.com/spec-kit/sales-tracker/pkg/util/errorutil"
)

// CustomersHandler exposes role-scoped customer CRUD. Agents only ever see
// their own book; supervisors and admins see everyone and may filter by
// agent.
type CustomersHandler struct {
	customers *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customers *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{customers: customers}
}

// List handles GET /api/customers. ?withLatest=true joins each customer
// with its most recent interaction; ?agentId= filters for supervisors and
// admins.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	withLatest := c.Query("withLatest") == "true"
	agentFilter := c.Query("agentId")

	var scope *string
	if principal.IsAgent() {
		scope = &principal.User.ID
	} else if agentFilter != "" {
		if err := checkID(agentFilter); err != nil {
			return err
		}
		scope = &agentFilter
	}

	if withLatest {
		customers, err := h.customers.ListWithLatest(c.UserContext(), scope)
		if err != nil {
			return err
		}
		return respondData(c, customers)
	}

	if scope != nil {
		customers, err := h.customers.ListByAgent(c.UserContext(), *scope)
		if err != nil {
			return err
		}
		return respondData(c, customers)
	}

	customers, err := h.customers.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return respondData(c, customers)
}

// Create handles POST /api/customers. Agents always own what they create;
// admins supply the owning agent explicitly. Supervisors cannot create.
func (h *CustomersHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}
	if principal.Role != domain.RoleAgent && principal.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("Forbidden")
	}

	var req dto.CustomerCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid payload")
	}
	if principal.IsAgent() {
		req.AgentID = principal.User.ID
	}

	customer, err := h.customers.Create(c.UserContext(), service.CustomerCreateInput{
		Name:         req.Name,
		ContactTitle: req.ContactTitle,
		Email:        req.Email,
		Phone:        req.Phone,
		AgentID:      req.AgentID,
	})
	if err != nil {
		return err
	}
	return respondMessage(c, customer, "Customer created successfully")
}

// Get handles GET /api/customers/:id with an ownership check for agents.
func (h *CustomersHandler) Get(c *fiber.Ctx) error {
	_, customer, err := h.loadOwned(c)
	if err != nil {
		return err
	}
	return respondData(c, customer)
}

// Update handles PUT /api/customers/:id. Agents may edit contact fields on
// their own customers; only admins may reassign ownership.
func (h *CustomersHandler) Update(c *fiber.Ctx) error {
	principal, customer, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	var req dto.CustomerUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid payload")
	}

	update := repository.CustomerUpdate{
		Name:         req.Name,
		ContactTitle: req.ContactTitle,
		Email:        req.Email,
		Phone:        req.Phone,
	}
	if req.AgentID != nil && principal.Role == domain.RoleAdmin {
		if err := checkID(*req.AgentID); err != nil {
			return err
		}
		update.AgentID = req.AgentID
	}

	updated, err := h.customers.Update(c.UserContext(), customer.ID, update)
	if err != nil {
		return err
	}
	if updated == nil {
		return apperrors.NewNotFound("Customer")
	}
	return respondData(c, updated)
}

// Delete handles DELETE /api/customers/:id.
func (h *CustomersHandler) Delete(c *fiber.Ctx) error {
	_, customer, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	deleted, err := h.customers.Delete(c.UserContext(), customer.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("Customer")
	}
	return respondMessage(c, nil, "Deleted")
}

// loadOwned fetches the path customer and rejects agents touching a
// customer they do not own. Mismatches are an explicit 403, never a
// silent filter.
func (h *CustomersHandler) loadOwned(c *fiber.Ctx) (*auth.Principal, *domain.Customer, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, nil, apperrors.NewUnauthorized("Unauthorized")
	}

	id := c.Params("id")
	if err := checkID(id); err != nil {
		return nil, nil, err
	}

	customer, err := h.customers.GetByID(c.UserContext(), id)
	if err != nil {
		return nil, nil, err
	}
	if customer == nil {
		return nil, nil, apperrors.NewNotFound("Customer")
	}
	if !principal.Owns(customer.AgentID) {
		return nil, nil, apperrors.NewForbidden("Forbidden")
	}
	return principal, customer, nil
}
