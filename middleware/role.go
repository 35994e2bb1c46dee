package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRole returns a middleware that rejects authenticated requests
// whose role does not match. Protected must run first.
func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized: role not found")
		}

		if role != requiredRole {
			return ErrorResponse(c, fiber.StatusForbidden, "You do not have permission to access this resource!")
		}

		return c.Next()
	}
}
