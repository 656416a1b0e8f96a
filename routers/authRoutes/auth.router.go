package authRoutes

import (
	authController "dma/controllers/auth"
	"dma/middleware"
	authValidator "dma/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, h *authController.Handler) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), h.Signup)
	authGroup.Post("/login", authValidator.Login(), h.Login)
	authGroup.Get("/profile", middleware.JWTMiddleware, h.GetProfile)
	authGroup.Put("/change/login/password", authValidator.ChangeLoginPassword(), middleware.JWTMiddleware, h.ChangeLoginPassword)
}
