package dashboardValidator

import (
	"strings"
	"time"

	"dma/controllers/dashboard"
	"dma/middleware"

	"github.com/gofiber/fiber/v2"
)

// parseLooseDate accepts the date shapes the frontend has historically
// sent. Unparseable values are dropped, not rejected; the filter is best
// effort.
func parseLooseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// StatsQuery validates the optional date window of the stats endpoint.
func StatsQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := &dashboardController.StatsQuery{
			StartDate: parseLooseDate(c.Query("startDate")),
			EndDate:   parseLooseDate(c.Query("endDate")),
		}

		if query.StartDate != nil && query.EndDate != nil && query.EndDate.Before(*query.StartDate) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "End date must not be before start date!", nil)
		}

		c.Locals("validatedStatsQuery", query)
		return c.Next()
	}
}

// RecomputeStats validates the client snapshot body. Individual enrolledAt
// values stay raw; the controller interprets the per-record shapes.
func RecomputeStats() fiber.Handler {
	return func(c *fiber.Ctx) error {
		snapshot := new(dashboardController.StatsSnapshot)

		if err := c.BodyParser(snapshot); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if snapshot.Enrollments == nil {
			errors["enrollments"] = "Enrollments list is required!"
		} else if len(snapshot.Enrollments) > 10000 {
			errors["enrollments"] = "Snapshot is too large!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStatsSnapshot", snapshot)
		return c.Next()
	}
}
