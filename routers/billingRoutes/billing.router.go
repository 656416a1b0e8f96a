package billingRoutes

import (
	billingController "dma/controllers/billing"
	"dma/middleware"
	billingValidator "dma/validators/billing"

	"github.com/gofiber/fiber/v2"
)

func SetupBillingRoutes(app *fiber.App, h *billingController.Handler) {
	billingGroup := app.Group("/billing", middleware.JWTMiddleware)

	billingGroup.Post("/promo/validate", billingValidator.ValidatePromo(), h.ValidatePromo)
	billingGroup.Post("/subscribe", billingValidator.Subscribe(), h.Subscribe)
	billingGroup.Post("/subscription/cancel", h.CancelSubscription)
	billingGroup.Get("/invoices", h.GetInvoices)
}
