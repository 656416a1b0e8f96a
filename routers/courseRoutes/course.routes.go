package courseRoutes

import (
	controllers "dma/controllers/course"
	"dma/middleware"
	validators "dma/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App, h *controllers.Handler) {
	userGroup := app.Group("/course")

	// Course listing is public; details need a login
	userGroup.Get("/list", validators.CourseList(), h.GetCourses)
	userGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseProgress(), h.GetCourseDetails)

	// Enrollment
	userGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), h.EnrollInCourse)

	// Progress tracking
	userGroup.Post("/:id/lesson/:lesson_id/progress", middleware.JWTMiddleware, validators.ReportProgress(), h.ReportLessonProgress)
	userGroup.Get("/:id/progress", middleware.JWTMiddleware, validators.CourseProgress(), h.GetCourseProgress)

	// User enrollments and device handoff
	userEnrollGroup := app.Group("/user")
	userEnrollGroup.Get("/enrollments", middleware.JWTMiddleware, validators.GetUserEnrollments(), h.GetEnrollments)
	userEnrollGroup.Post("/device/sync", middleware.JWTMiddleware, validators.SyncDevice(), h.SyncDevice)
}
