package controllers

import (
	"dma/middleware"
	courseModels "dma/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateModule creates a new module in a course
func (h *Handler) AdminCreateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	// Check if course exists
	var course courseModels.Course
	if err := h.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedModule").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OrderIndex  int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Get the next order index if not provided
	orderIndex := reqData.OrderIndex
	if orderIndex == 0 {
		var maxOrder int
		h.DB.Model(&courseModels.Module{}).Where("course_id = ? AND is_deleted = ?", courseID, false).
			Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)
		orderIndex = maxOrder + 1
	}

	module := courseModels.Module{
		CourseID:    uint(courseID),
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  orderIndex,
	}

	if err := h.DB.Create(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// AdminUpdateModule updates an existing module
func (h *Handler) AdminUpdateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := h.DB.Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedModuleUpdate").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OrderIndex  int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		module.Title = reqData.Title
	}
	if reqData.Description != "" {
		module.Description = reqData.Description
	}
	if reqData.OrderIndex > 0 {
		module.OrderIndex = reqData.OrderIndex
	}

	if err := h.DB.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// AdminDeleteModule soft deletes a module and its lessons
func (h *Handler) AdminDeleteModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := h.DB.Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	tx := h.DB.Begin()

	module.IsDeleted = true
	if err := tx.Save(&module).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	if err := tx.Model(&courseModels.Lesson{}).Where("module_id = ?", moduleID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module lessons!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// AdminListModules lists all modules in a course with lesson counts
func (h *Handler) AdminListModules(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := h.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	if err := h.DB.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	type ModuleWithCount struct {
		courseModels.Module
		LessonCount int64 `json:"lesson_count"`
	}

	modulesWithCount := make([]ModuleWithCount, len(modules))
	for i, mod := range modules {
		var count int64
		h.DB.Model(&courseModels.Lesson{}).Where("module_id = ? AND is_deleted = ?", mod.ID, false).Count(&count)
		modulesWithCount[i] = ModuleWithCount{
			Module:      mod,
			LessonCount: count,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", fiber.Map{
		"modules": modulesWithCount,
	})
}

// AdminCreateLesson creates a lesson, attached to a module or directly to
// the course when no module id is given.
func (h *Handler) AdminCreateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := h.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		ModuleID        *uint  `json:"module_id"`
		Title           string `json:"title"`
		VideoURL        string `json:"video_url"`
		DurationSeconds int    `json:"duration_seconds"`
		OrderIndex      int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.ModuleID != nil {
		var module courseModels.Module
		if err := h.DB.Where("id = ? AND course_id = ? AND is_deleted = ?", *reqData.ModuleID, courseID, false).First(&module).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		}
	}

	lesson := courseModels.Lesson{
		CourseID:        uint(courseID),
		ModuleID:        reqData.ModuleID,
		Title:           reqData.Title,
		VideoURL:        reqData.VideoURL,
		DurationSeconds: reqData.DurationSeconds,
		OrderIndex:      reqData.OrderIndex,
	}

	if err := h.DB.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// AdminUpdateLesson updates lesson fields, including publish state
func (h *Handler) AdminUpdateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := h.DB.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	reqData, ok := c.Locals("validatedLessonUpdate").(*struct {
		Title           string `json:"title"`
		VideoURL        string `json:"video_url"`
		DurationSeconds int    `json:"duration_seconds"`
		OrderIndex      int    `json:"order_index"`
		IsPublished     *bool  `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		lesson.Title = reqData.Title
	}
	if reqData.VideoURL != "" {
		lesson.VideoURL = reqData.VideoURL
	}
	if reqData.DurationSeconds > 0 {
		lesson.DurationSeconds = reqData.DurationSeconds
	}
	if reqData.OrderIndex > 0 {
		lesson.OrderIndex = reqData.OrderIndex
	}
	if reqData.IsPublished != nil {
		lesson.IsPublished = *reqData.IsPublished
	}

	if err := h.DB.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// AdminDeleteLesson soft deletes a lesson
func (h *Handler) AdminDeleteLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := h.DB.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	lesson.IsDeleted = true
	if err := h.DB.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
