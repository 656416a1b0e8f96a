package companyRoutes

import (
	companyController "dma/controllers/company"
	"dma/middleware"
	companyValidator "dma/validators/company"

	"github.com/gofiber/fiber/v2"
)

func SetupCompanyRoutes(app *fiber.App, h *companyController.Handler) {
	companyGroup := app.Group("/company", middleware.JWTMiddleware)

	companyGroup.Post("/create", companyValidator.CreateCompany(), h.CreateCompany)
	companyGroup.Post("/invite", companyValidator.InviteMember(), h.InviteMember)
	companyGroup.Post("/invite/accept", companyValidator.AcceptInvite(), h.AcceptInvite)
	companyGroup.Get("/overview", h.GetCompanyOverview)
}
