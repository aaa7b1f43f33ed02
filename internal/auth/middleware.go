package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sales-tracker/internal/domain"
	"github.com/spec-kit/sales-tracker/internal/repository"
	apperrors "github.com/spec-kit/sales-tracker/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	User *domain.User
	Role domain.Role
}

// IsAgent reports whether the caller holds the agent role.
func (p *Principal) IsAgent() bool { return p.Role == domain.RoleAgent }

// Owns reports whether an agent-scoped resource belongs to the caller.
// Non-agent roles pass; agents must match the stored agent id exactly.
func (p *Principal) Owns(agentID string) bool {
	if p.Role == domain.RoleAgent {
		return p.User != nil && p.User.ID == agentID
	}
	return true
}

// AuthMiddleware resolves the session cookie (or bearer token) into a
// Principal loaded from the users collection.
type AuthMiddleware struct {
	tokens  *TokenManager
	cookies SessionCookies
	users   repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, cookies SessionCookies, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, cookies: cookies, users: users}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	tokenStr := m.cookies.Read(c)
	if tokenStr == "" {
		tokenStr = bearerToken(c)
	}
	if tokenStr == "" {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	claims, err := m.tokens.ParseToken(tokenStr)
	if err != nil {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	user, err := m.users.GetByID(c.UserContext(), claims.UserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("Unauthorized")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{User: user, Role: user.Role})
	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
