package courseValidator

import (
	"strings"

	"dma/middleware"

	"github.com/gofiber/fiber/v2"
)

// CourseList validates the public course listing query. Pagination is
// optional and defaulted downstream.
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page     *int   `json:"page"`
			Limit    *int   `json:"limit"`
			Category string `json:"category"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}

		if reqData.Limit != nil && (*reqData.Limit < 1 || *reqData.Limit > 100) {
			errors["limit"] = "Limit must be between 1 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.Category = strings.TrimSpace(reqData.Category)

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}
