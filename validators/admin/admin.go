package adminValidator

import (
	"strconv"
	"strings"

	"dma/middleware"

	"github.com/gofiber/fiber/v2"
)

// BlockUser validates a user block/unblock request.
func BlockUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr := strings.TrimSpace(c.Params("user_id"))
		if userIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User ID is required!", nil)
		}

		userID, err := strconv.Atoi(userIDStr)
		if err != nil || userID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		reqData := new(struct {
			Blocked bool `json:"blocked"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("targetUserID", userID)
		c.Locals("blockStatus", reqData.Blocked)
		return c.Next()
	}
}

// BulkDeleteEnrollments validates the background enrollment sweep request.
func BulkDeleteEnrollments() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}
