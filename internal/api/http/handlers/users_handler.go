package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sales-tracker/internal/api/dto"
	"github.com/spec-kit/sales-tracker/internal/auth"
	"github.com/spec-kit/sales-tracker/internal/domain"
	"github.com/spec-kit/sales-tracker/internal/service"
	apperrors "github.com/spec-kit/sales-tracker/pkg/util/errorutil"
)

// UsersHandler exposes admin-gated account management. PasswordHash never
// serializes (json:"-"), so every response is sanitized by construction.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Get handles GET /api/users. Without an id it lists all accounts (admin
// only); with ?id= it fetches one account — admin and supervisor may fetch
// anyone, agents only themselves.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	id := c.Query("id")
	if id == "" {
		if principal.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("Forbidden")
		}
		users, err := h.users.List(c.UserContext())
		if err != nil {
			return err
		}
		return respondData(c, users)
	}

	if principal.Role == domain.RoleAgent && principal.User.ID != id {
		return apperrors.NewForbidden("Forbidden")
	}
	if err := checkID(id); err != nil {
		return err
	}

	user, err := h.users.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFound("User")
	}
	return respondData(c, user)
}

// Create handles POST /api/users (admin only).
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid payload")
	}

	user, err := h.users.Create(c.UserContext(), service.UserCreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return respondMessage(c, user, "User created successfully")
}

// Update handles PUT /api/users (admin only).
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid payload")
	}
	if req.ID == "" {
		return apperrors.NewBadRequest("User ID is required")
	}
	if err := checkID(req.ID); err != nil {
		return err
	}

	input := service.UserUpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		input.Role = &role
	}

	user, err := h.users.Update(c.UserContext(), req.ID, input)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFound("User")
	}
	return respondMessage(c, user, "User updated successfully")
}

// Delete handles DELETE /api/users?id= (admin only). Admins cannot delete
// their own account.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	id := c.Query("id")
	if id == "" {
		return apperrors.NewBadRequest("User ID is required")
	}
	if id == principal.User.ID {
		return apperrors.NewBadRequest("You cannot delete your own account")
	}
	if err := checkID(id); err != nil {
		return err
	}

	deleted, err := h.users.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("User")
	}
	return respondMessage(c, nil, "User deleted successfully")
}
