package courseValidator

import (
	"regexp"
	"strconv"
	"strings"

	"dma/middleware"

	"github.com/gofiber/fiber/v2"
)

// ============ Course Validators ============

// CreateCourseAdmin validates admin course creation request
func CreateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			Author       string `json:"author"`
			Category     string `json:"category"`
			Duration     int64  `json:"duration"`
			PriceHUF     int64  `json:"price_huf"`
			ThumbnailURL string `json:"thumbnail_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Author = strings.TrimSpace(reqData.Author)
		reqData.Category = strings.TrimSpace(reqData.Category)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Description == "" {
			errors["description"] = "Description is required!"
		} else if len(reqData.Description) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		if reqData.Author == "" {
			errors["author"] = "Author is required!"
		} else if len(reqData.Author) < 3 {
			errors["author"] = "Author must be at least 3 characters long!"
		} else if matched, _ := regexp.MatchString(`[<>{}]`, reqData.Author); matched {
			errors["author"] = "Author name contains invalid characters!"
		}

		if reqData.Duration <= 0 {
			errors["duration"] = "Duration must be a positive number!"
		}

		if reqData.PriceHUF < 0 {
			errors["price_huf"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourseAdmin validates admin course update request
func UpdateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			Author       string `json:"author"`
			Category     string `json:"category"`
			Duration     int64  `json:"duration"`
			PriceHUF     int64  `json:"price_huf"`
			ThumbnailURL string `json:"thumbnail_url"`
			Status       string `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Author = strings.TrimSpace(reqData.Author)
		reqData.Category = strings.TrimSpace(reqData.Category)
		reqData.Status = strings.TrimSpace(reqData.Status)

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Description != "" && len(reqData.Description) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		if reqData.Author != "" {
			if len(reqData.Author) < 3 {
				errors["author"] = "Author must be at least 3 characters long!"
			} else if matched, _ := regexp.MatchString(`[<>{}]`, reqData.Author); matched {
				errors["author"] = "Author name contains invalid characters!"
			}
		}

		if reqData.Status != "" {
			validStatuses := map[string]bool{"DRAFT": true, "ACTIVE": true, "INACTIVE": true}
			if !validStatuses[reqData.Status] {
				errors["status"] = "Status must be DRAFT, ACTIVE, or INACTIVE!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// DeleteCourse validates course deletion request
func DeleteCourse() fiber.Handler {
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

// PublishCourse validates course publish/unpublish request
func PublishCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			IsPublished bool `json:"is_published"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("publishStatus", reqData.IsPublished)
		return c.Next()
	}
}

// ============ Module Validators ============

// CreateModule validates module creation request
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OrderIndex  int    `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)

		if reqData.Title == "" {
			errors["title"] = "Module title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Module title must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// UpdateModule validates module update request
func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("course_id"))
		moduleIDStr := strings.TrimSpace(c.Params("module_id"))

		if courseIDStr == "" || moduleIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID and Module ID are required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		moduleID, err := strconv.Atoi(moduleIDStr)
		if err != nil || moduleID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
		}

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OrderIndex  int    `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		reqData.Title = strings.TrimSpace(reqData.Title)

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Module title must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleID", moduleID)
		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

// DeleteModule validates module deletion request
func DeleteModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("course_id"))
		moduleIDStr := strings.TrimSpace(c.Params("module_id"))

		if courseIDStr == "" || moduleIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID and Module ID are required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		moduleID, err := strconv.Atoi(moduleIDStr)
		if err != nil || moduleID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleID", moduleID)
		return c.Next()
	}
}

// ListModules validates module listing request
func ListModules() fiber.Handler {
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

// ============ Lesson Validators ============

// CreateLesson validates lesson creation request
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			ModuleID        *uint  `json:"module_id"`
			Title           string `json:"title"`
			VideoURL        string `json:"video_url"`
			DurationSeconds int    `json:"duration_seconds"`
			OrderIndex      int    `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.VideoURL = strings.TrimSpace(reqData.VideoURL)

		if reqData.Title == "" {
			errors["title"] = "Lesson title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Lesson title must be at least 3 characters long!"
		}

		if reqData.VideoURL == "" {
			errors["video_url"] = "Video URL is required!"
		}

		if reqData.DurationSeconds < 0 {
			errors["duration_seconds"] = "Duration cannot be negative!"
		}

		if reqData.ModuleID != nil && *reqData.ModuleID == 0 {
			errors["module_id"] = "Invalid Module ID!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// UpdateLesson validates lesson update request
func UpdateLesson() fiber.Handler {
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
			Title           string `json:"title"`
			VideoURL        string `json:"video_url"`
			DurationSeconds int    `json:"duration_seconds"`
			OrderIndex      int    `json:"order_index"`
			IsPublished     *bool  `json:"is_published"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		reqData.Title = strings.TrimSpace(reqData.Title)

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Lesson title must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("lessonID", lessonID)
		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

// DeleteLesson validates lesson deletion request
func DeleteLesson() fiber.Handler {
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

		c.Locals("courseID", courseID)
		c.Locals("lessonID", lessonID)
		return c.Next()
	}
}

// AdminList validates admin list request with pagination
func AdminList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		c.Locals("validatedAdminList", reqData)
		return c.Next()
	}
}
