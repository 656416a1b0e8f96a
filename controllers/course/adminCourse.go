package controllers

import (
	"dma/middleware"
	courseModels "dma/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateCourse creates a new course
func (h *Handler) AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		Author       string `json:"author"`
		Category     string `json:"category"`
		Duration     int64  `json:"duration"`
		PriceHUF     int64  `json:"price_huf"`
		ThumbnailURL string `json:"thumbnail_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Author:       reqData.Author,
		Category:     reqData.Category,
		Duration:     reqData.Duration,
		PriceHUF:     reqData.PriceHUF,
		ThumbnailURL: reqData.ThumbnailURL,
		Status:       "DRAFT",
		IsPublished:  false,
	}

	if err := h.DB.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates an existing course
func (h *Handler) AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := h.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		Author       string `json:"author"`
		Category     string `json:"category"`
		Duration     int64  `json:"duration"`
		PriceHUF     int64  `json:"price_huf"`
		ThumbnailURL string `json:"thumbnail_url"`
		Status       string `json:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Author != "" {
		course.Author = reqData.Author
	}
	if reqData.Category != "" {
		course.Category = reqData.Category
	}
	if reqData.Duration > 0 {
		course.Duration = reqData.Duration
	}
	if reqData.PriceHUF > 0 {
		course.PriceHUF = reqData.PriceHUF
	}
	if reqData.ThumbnailURL != "" {
		course.ThumbnailURL = reqData.ThumbnailURL
	}
	if reqData.Status != "" {
		course.Status = reqData.Status
	}

	if err := h.DB.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminDeleteCourse soft deletes a course
func (h *Handler) AdminDeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := h.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsDeleted = true
	if err := h.DB.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminGetAllCourses lists all courses for admin
func (h *Handler) AdminGetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAdminList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if ok && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if ok && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	var courses []courseModels.Course
	var total int64

	db := h.DB.Model(&courseModels.Course{}).Where("is_deleted = ?", false)
	db.Count(&total)

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

// AdminGetCourseDetails gets a single course with modules and counters
func (h *Handler) AdminGetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := h.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	h.DB.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&modules)

	var lessonCount int64
	h.DB.Model(&courseModels.Lesson{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&lessonCount)

	var enrollmentCount int64
	h.DB.Model(&courseModels.Enrollment{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&enrollmentCount)

	var completedCount int64
	h.DB.Model(&courseModels.Enrollment{}).
		Where("course_id = ? AND is_deleted = ? AND status = ?", courseID, false, "completed").
		Count(&completedCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":           course,
		"modules":          modules,
		"lesson_count":     lessonCount,
		"enrollment_count": enrollmentCount,
		"completed_count":  completedCount,
	})
}

// AdminPublishCourse publishes or unpublishes a course
func (h *Handler) AdminPublishCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	publishStatus := c.Locals("publishStatus").(bool)

	var course courseModels.Course
	if err := h.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsPublished = publishStatus
	if publishStatus {
		course.Status = "ACTIVE"
	}

	if err := h.DB.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	message := "Course unpublished successfully!"
	if publishStatus {
		message = "Course published successfully!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, course)
}

// AdminGetCourseEnrollments lists enrollments of one course with their
// progress, for the admin detail screen.
func (h *Handler) AdminGetCourseEnrollments(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedAdminList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if ok && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if ok && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := h.DB.Model(&courseModels.Enrollment{}).Where("course_id = ? AND is_deleted = ?", courseID, false)

	var total int64
	db.Count(&total)

	var enrollments []courseModels.Enrollment
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
