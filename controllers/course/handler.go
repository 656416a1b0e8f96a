package controllers

import (
	"dma/middleware"
	"dma/models"
	courseModels "dma/models/course"
	"dma/progress"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler carries the injected store handle for all course controllers.
type Handler struct {
	DB  *gorm.DB
	Log *zap.SugaredLogger
}

func NewHandler(db *gorm.DB, log *zap.SugaredLogger) *Handler {
	return &Handler{DB: db, Log: log}
}

// currentUser resolves the authenticated caller or writes the error
// response and returns false.
func (h *Handler) currentUser(c *fiber.Ctx) (models.User, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		_ = middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		return models.User{}, false
	}

	var user models.User
	if err := h.DB.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		_ = middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		return models.User{}, false
	}

	return user, true
}

// courseOutline assembles the lesson-bearing shape of a course. Which
// source applies is decided by the extraction strategies in the progress
// package; this only reports what exists.
func (h *Handler) courseOutline(course courseModels.Course) progress.CourseOutline {
	var outline progress.CourseOutline

	var modules []courseModels.Module
	h.DB.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("order_index asc").Find(&modules)
	if len(modules) > 0 {
		outline.Modules = make([]progress.ModuleOutline, len(modules))
		for i, mod := range modules {
			var lessonIDs []uint
			h.DB.Model(&courseModels.Lesson{}).
				Where("module_id = ? AND is_deleted = ? AND is_published = ?", mod.ID, false, true).
				Pluck("id", &lessonIDs)
			outline.Modules[i] = progress.ModuleOutline{LessonIDs: lessonIDs}
		}
		return outline
	}

	// module-less generations keep lessons directly under the course
	var lessonIDs []uint
	h.DB.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND module_id IS NULL AND is_deleted = ? AND is_published = ?", course.ID, false, true).
		Pluck("id", &lessonIDs)
	if len(lessonIDs) > 0 {
		outline.Lessons = lessonIDs
		return outline
	}

	// oldest generation: stored counter only (may be nil)
	outline.LessonCount = course.LessonCount
	return outline
}

// completedLessonCount counts the user's finished lessons in a course. The
// completion rule is applied in memory so there is exactly one definition
// of "done".
func (h *Handler) completedLessonCount(userID, courseID uint) int {
	var rows []courseModels.LessonProgress
	h.DB.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).Find(&rows)

	count := 0
	for _, lp := range rows {
		if progress.IsLessonComplete(lp.WatchPercentage, lp.Completed) {
			count++
		}
	}
	return count
}
