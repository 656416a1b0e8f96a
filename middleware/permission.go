package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRole returns a middleware that checks the role claim set by
// JWTMiddleware against the allowed set. Controllers still re-verify the
// user row; this gate just rejects obviously wrong callers early.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "Unauthorized: role not found",
				"data":    nil,
			})
		}

		if !allowed[role] {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  false,
				"message": "You do not have permission to access this resource!",
				"data":    nil,
			})
		}

		return c.Next()
	}
}
