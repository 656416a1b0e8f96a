package controllers

import (
	"time"

	"dma/middleware"
	courseModels "dma/models/course"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) EnrollInCourse(c *fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return nil
	}

	// Retrieve validated course ID
	courseID := c.Locals("courseID").(int)

	// Check if course exists and is active
	var course courseModels.Course
	if err := h.DB.Where("id = ? AND is_deleted = ? AND status = ?", courseID, false, "ACTIVE").First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	}

	// Check if user is already enrolled
	var existingEnrollment courseModels.Enrollment
	if err := h.DB.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
	}

	now := time.Now()
	enrollment := courseModels.Enrollment{
		UserID:     user.ID,
		CourseID:   uint(courseID),
		Status:     "not_started",
		EnrolledAt: &now,
	}

	// Save to database with transaction
	tx := h.DB.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

func (h *Handler) GetEnrollments(c *fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return nil
	}

	// Retrieve validated pagination request
	reqData, _ := c.Locals("validatedEnrollmentList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
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

	db := h.DB.Model(&courseModels.Enrollment{}).Where("user_id = ? AND is_deleted = ?", user.ID, false)

	// Get total count
	var total int64
	db.Count(&total)

	// Fetch paginated data
	var enrollments []courseModels.Enrollment
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	// Prepare response
	response := fiber.Map{
		"enrollments": enrollments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", response)
}
