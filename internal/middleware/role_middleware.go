package middleware

import (
	"lapak/internal/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRole guards a route so only callers holding the given role may
// pass. Admins pass every check. Must run after AuthRequired, which
// puts the role claim in the request locals.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actual, _ := c.Locals("role").(string)
		if actual == role || actual == models.RoleAdmin {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "Forbidden",
		})
	}
}
