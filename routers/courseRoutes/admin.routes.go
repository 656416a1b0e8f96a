package courseRoutes

import (
	controllers "dma/controllers/course"
	"dma/middleware"
	validators "dma/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App, h *controllers.Handler) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	// Course CRUD
	adminGroup.Post("/create", validators.CreateCourseAdmin(), h.AdminCreateCourse)
	adminGroup.Put("/:id", validators.UpdateCourseAdmin(), h.AdminUpdateCourse)
	adminGroup.Delete("/:id", validators.DeleteCourse(), h.AdminDeleteCourse)
	adminGroup.Get("/list", validators.AdminList(), h.AdminGetAllCourses)
	adminGroup.Get("/:id", validators.DeleteCourse(), h.AdminGetCourseDetails)
	adminGroup.Post("/:id/publish", validators.PublishCourse(), h.AdminPublishCourse)

	// Module Management
	adminGroup.Post("/:id/module", validators.CreateModule(), h.AdminCreateModule)
	adminGroup.Put("/:course_id/module/:module_id", validators.UpdateModule(), h.AdminUpdateModule)
	adminGroup.Delete("/:course_id/module/:module_id", validators.DeleteModule(), h.AdminDeleteModule)
	adminGroup.Get("/:id/modules", validators.ListModules(), h.AdminListModules)

	// Lesson Management
	adminGroup.Post("/:id/lesson", validators.CreateLesson(), h.AdminCreateLesson)
	adminGroup.Put("/:id/lesson/:lesson_id", validators.UpdateLesson(), h.AdminUpdateLesson)
	adminGroup.Delete("/:id/lesson/:lesson_id", validators.DeleteLesson(), h.AdminDeleteLesson)

	// Enrollment views
	adminGroup.Get("/:id/enrollments", validators.ListModules(), validators.AdminList(), h.AdminGetCourseEnrollments)
}
