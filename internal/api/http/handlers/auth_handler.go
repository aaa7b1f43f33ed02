package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sales-tracker/internal/api/dto"
	"github.com/spec-kit/sales-tracker/internal/auth"
	"github.com/spec-kit/sales-tracker/internal/service"
	apperrors "github.com/spec-kit/sales-tracker/pkg/util/errorutil"
)

// AuthHandler exposes session endpoints.
type AuthHandler struct {
	auth    *service.AuthService
	cookies auth.SessionCookies
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookies auth.SessionCookies) *AuthHandler {
	return &AuthHandler{auth: authService, cookies: cookies}
}

// Login handles POST /api/auth/login, issuing the session cookie.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewBadRequest("Email and password are required")
	}

	user, token, expiresAt, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.cookies.Issue(c, token, expiresAt)
	return respondData(c, dto.SessionResponse{User: user, ExpiresAt: expiresAt})
}

// Logout handles POST /api/auth/logout, clearing the session cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.cookies.Clear(c)
	return respondMessage(c, nil, "Logged out")
}

// Session handles GET /api/auth/session for the authenticated caller.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}
	return respondData(c, principal.User)
}
