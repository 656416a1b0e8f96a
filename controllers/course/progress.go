package controllers

import (
	"time"

	"dma/middleware"
	courseModels "dma/models/course"
	"dma/progress"
	"dma/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReportLessonProgress is the watch-progress upsert the player hits at
// roughly 10-second intervals. It is idempotent per (user, lesson) and
// rolls the result up into the enrollment's completion percentage.
func (h *Handler) ReportLessonProgress(c *fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return nil
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	reqData, ok := c.Locals("validatedProgressReport").(*struct {
		WatchPercentage float64 `json:"watchPercentage"`
		TimeSpent       float64 `json:"timeSpent"`
		ResumePosition  float64 `json:"resumePosition"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Check enrollment
	var enrollment courseModels.Enrollment
	if err := h.DB.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	// Check lesson exists in this course
	var lesson courseModels.Lesson
	if err := h.DB.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", lessonID, courseID, false, true).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var course courseModels.Course
	if err := h.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	now := time.Now()

	// Upsert the lesson progress row
	var lp courseModels.LessonProgress
	err := h.DB.Where("user_id = ? AND lesson_id = ?", user.ID, lessonID).First(&lp).Error
	if err != nil {
		lp = courseModels.LessonProgress{
			UserID:          user.ID,
			LessonID:        uint(lessonID),
			CourseID:        uint(courseID),
			WatchPercentage: reqData.WatchPercentage,
			TimeSpent:       reqData.TimeSpent,
			ResumePosition:  reqData.ResumePosition,
			Completed:       progress.IsLessonComplete(reqData.WatchPercentage, false),
			LastWatchedAt:   &now,
		}
		if err := h.DB.Create(&lp).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
		}
	} else {
		// Out-of-order or second-device reports never move progress
		// backwards.
		if reqData.WatchPercentage > lp.WatchPercentage {
			lp.WatchPercentage = reqData.WatchPercentage
		}
		if reqData.TimeSpent > lp.TimeSpent {
			lp.TimeSpent = reqData.TimeSpent
		}
		lp.ResumePosition = reqData.ResumePosition
		if !lp.Completed {
			lp.Completed = progress.IsLessonComplete(lp.WatchPercentage, false)
		}
		lp.LastWatchedAt = &now

		if err := h.DB.Save(&lp).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
		}
	}

	// Roll up to the enrollment
	completedCount := h.completedLessonCount(user.ID, uint(courseID))
	outline := h.courseOutline(course)
	pct := progress.ComputeCourseProgress(outline, completedCount)

	lessonRef := uint(lessonID)
	enrollment.CompletionPercentage = pct
	// The recomputed percentage wins over whatever status string the row
	// carried; inconsistent imports heal here.
	enrollment.Status = progress.StatusForProgress(pct)
	enrollment.CurrentLessonID = &lessonRef
	enrollment.LastAccessedAt = &now

	justCompleted := pct >= 100 && enrollment.CompletedAt == nil
	if justCompleted {
		enrollment.CompletedAt = &now
	}

	if err := h.DB.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment!", nil)
	}

	if justCompleted {
		go func(email, name, courseTitle string) {
			if err := utils.SendCourseCompletionEmail(email, name, courseTitle); err != nil {
				h.Log.Warnw("failed to send completion email", "email", email, "error", err)
			}
		}(user.Email, user.Name, course.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress saved!", fiber.Map{
		"lesson_progress":       lp,
		"completion_percentage": pct,
		"status":                enrollment.Status,
	})
}

// SyncDevice rewrites the device id on all of the caller's lesson-progress
// rows (optionally scoped to one course) and bumps their sync version. The
// write set goes out as one transaction; watch percentages are untouched.
func (h *Handler) SyncDevice(c *fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return nil
	}

	reqData, ok := c.Locals("validatedDeviceSync").(*struct {
		DeviceID string `json:"deviceId"`
		CourseID *uint  `json:"courseId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	tx := h.DB.Begin()

	db := tx.Model(&courseModels.LessonProgress{}).Where("user_id = ? AND is_deleted = ?", user.ID, false)
	if reqData.CourseID != nil {
		db = db.Where("course_id = ?", *reqData.CourseID)
	}

	result := db.Updates(map[string]interface{}{
		"device_id":    reqData.DeviceID,
		"sync_version": gorm.Expr("sync_version + 1"),
	})
	if result.Error != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sync device!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Device synced successfully!", fiber.Map{
		"device_id":      reqData.DeviceID,
		"synced_records": result.RowsAffected,
	})
}

// GetCourseProgress gets the user's progress in a course
func (h *Handler) GetCourseProgress(c *fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return nil
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := h.DB.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	// The user's watch state for this course, keyed by lesson
	var progressRows []courseModels.LessonProgress
	h.DB.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).Find(&progressRows)

	byLesson := make(map[uint]courseModels.LessonProgress, len(progressRows))
	for _, lp := range progressRows {
		byLesson[lp.LessonID] = lp
	}

	// Get module-wise progress
	var modules []courseModels.Module
	h.DB.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&modules)

	type ModuleProgress struct {
		ModuleID         uint    `json:"module_id"`
		ModuleName       string  `json:"module_name"`
		TotalLessons     int     `json:"total_lessons"`
		CompletedLessons int     `json:"completed_lessons"`
		Progress         float64 `json:"progress"`
	}

	moduleProgress := make([]ModuleProgress, len(modules))
	for i, mod := range modules {
		var lessonIDs []uint
		h.DB.Model(&courseModels.Lesson{}).
			Where("module_id = ? AND is_deleted = ? AND is_published = ?", mod.ID, false, true).
			Pluck("id", &lessonIDs)

		completed := 0
		for _, id := range lessonIDs {
			if lp, found := byLesson[id]; found && progress.IsLessonComplete(lp.WatchPercentage, lp.Completed) {
				completed++
			}
		}

		pct := float64(0)
		if len(lessonIDs) > 0 {
			pct = float64(completed) / float64(len(lessonIDs)) * 100
		}

		moduleProgress[i] = ModuleProgress{
			ModuleID:         mod.ID,
			ModuleName:       mod.Title,
			TotalLessons:     len(lessonIDs),
			CompletedLessons: completed,
			Progress:         pct,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":      enrollment,
		"lesson_progress": progressRows,
		"module_progress": moduleProgress,
	})
}
