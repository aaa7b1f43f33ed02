package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionCookies writes and clears the httpOnly session cookie.
type SessionCookies struct {
	Name   string
	Secure bool
}

// Issue attaches the session cookie to the response.
func (s SessionCookies) Issue(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     s.Name,
		Value:    token,
		Expires:  expiresAt,
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Clear expires the session cookie immediately.
func (s SessionCookies) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.Name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Read returns the raw session token, empty when absent.
func (s SessionCookies) Read(c *fiber.Ctx) string {
	return c.Cookies(s.Name)
}
