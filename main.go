package main

import (
	"log"

	"dma/config"
	adminController "dma/controllers/admin"
	authController "dma/controllers/auth"
	billingController "dma/controllers/billing"
	companyController "dma/controllers/company"
	courseController "dma/controllers/course"
	dashboardController "dma/controllers/dashboard"
	"dma/database"
	applogger "dma/logger"
	"dma/payment"
	adminRoutes "dma/routers/adminRoutes"
	authRoutes "dma/routers/authRoutes"
	billingRoutes "dma/routers/billingRoutes"
	companyRoutes "dma/routers/companyRoutes"
	courseRoutes "dma/routers/courseRoutes"
	dashboardRoutes "dma/routers/dashboardRoutes"
	"dma/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()

	zlog, err := applogger.New(config.AppConfig.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Connect(config.AppConfig)
	if err != nil {
		zlog.Fatalw("failed to connect database", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatalw("failed to run migrations", "error", err)
	}

	cache, err := database.ConnectRedis(config.AppConfig)
	if err != nil {
		// Redis only backs the stale stats fallback; start without it
		zlog.Warnw("redis unavailable, stats cache disabled", "error", err)
		cache = nil
	}

	gateway := payment.NewClient(config.AppConfig.PaymentApiURL, config.AppConfig.PaymentPosKey)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.AppConfig.FrontendOrigin,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app, authController.NewHandler(db, zlog))

	course := courseController.NewHandler(db, zlog)
	courseRoutes.SetupCourseRoutes(app, course)
	courseRoutes.SetupAdminCourseRoutes(app, course)

	dashboardRoutes.SetupDashboardRoutes(app, dashboardController.NewHandler(db, cache, zlog))
	companyRoutes.SetupCompanyRoutes(app, companyController.NewHandler(db, zlog))
	billingRoutes.SetupBillingRoutes(app, billingController.NewHandler(db, gateway, zlog))
	adminRoutes.SetupAdminRoutes(app, adminController.NewHandler(db, zlog))

	scheduler := utils.InitializeSubscriptionScheduler(db, zlog)
	defer scheduler.Stop()

	zlog.Infow("server starting", "port", config.AppConfig.Port)
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		zlog.Fatalw("server stopped", "error", err)
	}
}
