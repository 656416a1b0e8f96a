package controllers

import (
	courseModels "dma/models/course"

	"dma/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetCourses lists published courses for browsing. Public endpoint.
func (h *Handler) GetCourses(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedCourseList").(*struct {
		Page     *int   `json:"page"`
		Limit    *int   `json:"limit"`
		Category string `json:"category"`
	})

	// Set default pagination
	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := h.DB.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ? AND status = ?", false, true, "ACTIVE")

	if reqData != nil && reqData.Category != "" {
		db = db.Where("category = ?", reqData.Category)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails gets course details with modules and lessons for users
func (h *Handler) GetCourseDetails(c *fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return nil
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := h.DB.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Get modules with their lessons
	var modules []courseModels.Module
	h.DB.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&modules)

	type ModuleWithLessons struct {
		courseModels.Module
		Lessons []courseModels.Lesson `json:"lessons"`
	}

	moduleList := make([]ModuleWithLessons, len(modules))
	for i, mod := range modules {
		moduleList[i] = ModuleWithLessons{Module: mod}
		h.DB.Where("module_id = ? AND is_deleted = ? AND is_published = ?", mod.ID, false, true).
			Order("order_index asc").Find(&moduleList[i].Lessons)
	}

	// module-less courses expose their lessons flat
	var flatLessons []courseModels.Lesson
	if len(modules) == 0 {
		h.DB.Where("course_id = ? AND module_id IS NULL AND is_deleted = ? AND is_published = ?", courseID, false, true).
			Order("order_index asc").Find(&flatLessons)
	}

	// Check if user is enrolled
	var enrollment courseModels.Enrollment
	isEnrolled := h.DB.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).
		First(&enrollment).Error == nil

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":      course,
		"modules":     moduleList,
		"lessons":     flatLessons,
		"is_enrolled": isEnrolled,
		"enrollment":  enrollment,
	})
}
