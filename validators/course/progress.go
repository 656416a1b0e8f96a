package courseValidator

import (
	"strconv"
	"strings"

	"dma/middleware"

	"github.com/gofiber/fiber/v2"
)

// ReportProgress validates a lesson progress report. Percentages are
// clamped rather than rejected so a drifting player clock never loses a
// legitimate report.
func ReportProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		lessonIDStr := strings.TrimSpace(c.Params("lesson_id"))

		if courseIDStr == "" || lessonIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID and Lesson ID are required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		lessonID, err := strconv.Atoi(lessonIDStr)
		if err != nil || lessonID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		reqData := new(struct {
			WatchPercentage float64 `json:"watchPercentage"`
			TimeSpent       float64 `json:"timeSpent"`
			ResumePosition  float64 `json:"resumePosition"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.WatchPercentage < 0 {
			errors["watchPercentage"] = "Watch percentage cannot be negative!"
		}
		if reqData.WatchPercentage > 100 {
			reqData.WatchPercentage = 100
		}

		if reqData.TimeSpent < 0 {
			errors["timeSpent"] = "Time spent cannot be negative!"
		}

		if reqData.ResumePosition < 0 {
			errors["resumePosition"] = "Resume position cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("lessonID", lessonID)
		c.Locals("validatedProgressReport", reqData)
		return c.Next()
	}
}

// SyncDevice validates a device handoff request.
func SyncDevice() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			DeviceID string `json:"deviceId"`
			CourseID *uint  `json:"courseId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.DeviceID = strings.TrimSpace(reqData.DeviceID)
		if reqData.DeviceID == "" {
			errors["deviceId"] = "Device ID is required!"
		} else if len(reqData.DeviceID) > 128 {
			errors["deviceId"] = "Device ID is too long!"
		}

		if reqData.CourseID != nil && *reqData.CourseID == 0 {
			errors["courseId"] = "Invalid Course ID!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDeviceSync", reqData)
		return c.Next()
	}
}

// CourseProgress validates the per-course progress view request.
func CourseProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}
