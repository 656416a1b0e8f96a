package adminRoutes

import (
	adminController "dma/controllers/admin"
	"dma/middleware"
	adminValidator "dma/validators/admin"
	billingValidator "dma/validators/billing"
	courseValidator "dma/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App, h *adminController.Handler) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	adminGroup.Get("/stats", h.GetPlatformStats)
	adminGroup.Get("/users", courseValidator.AdminList(), h.ListUsers)
	adminGroup.Post("/user/:user_id/block", adminValidator.BlockUser(), h.BlockUser)
	adminGroup.Post("/promo/create", billingValidator.CreatePromoCode(), h.CreatePromoCode)
	adminGroup.Delete("/course/:id/enrollments", adminValidator.BulkDeleteEnrollments(), h.BulkDeleteEnrollments)
}
