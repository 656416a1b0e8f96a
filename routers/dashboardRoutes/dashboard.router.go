package dashboardRoutes

import (
	dashboardController "dma/controllers/dashboard"
	"dma/middleware"
	dashboardValidator "dma/validators/dashboard"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App, h *dashboardController.Handler) {
	dashGroup := app.Group("/dashboard", middleware.JWTMiddleware)

	dashGroup.Get("/stats", dashboardValidator.StatsQuery(), h.GetDashboardStats)
	dashGroup.Post("/stats/recompute", dashboardValidator.RecomputeStats(), h.RecomputeStats)
}
