package adminController

import (
	"dma/middleware"
	"dma/models"
	billingModels "dma/models/billing"
	courseModels "dma/models/course"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deleteBatchSize bounds each bulk-delete update so long-running sweeps
// never hold wide locks.
const deleteBatchSize = 500

type Handler struct {
	DB  *gorm.DB
	Log *zap.SugaredLogger
}

func NewHandler(db *gorm.DB, log *zap.SugaredLogger) *Handler {
	return &Handler{DB: db, Log: log}
}

// GetPlatformStats reports platform-wide counters for the admin home.
func (h *Handler) GetPlatformStats(c *fiber.Ctx) error {
	var userCount int64
	h.DB.Model(&models.User{}).Where("is_deleted = ?", false).Count(&userCount)

	var companyCount int64
	h.DB.Model(&models.Company{}).Where("is_deleted = ?", false).Count(&companyCount)

	var courseCount int64
	h.DB.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&courseCount)

	var publishedCount int64
	h.DB.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true).Count(&publishedCount)

	var enrollmentCount int64
	h.DB.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&enrollmentCount)

	var completedCount int64
	h.DB.Model(&courseModels.Enrollment{}).
		Where("is_deleted = ? AND status = ?", false, "completed").
		Count(&completedCount)

	var activeSubscriptions int64
	h.DB.Model(&billingModels.Subscription{}).
		Where("is_deleted = ? AND status = ?", false, billingModels.SubscriptionActive).
		Count(&activeSubscriptions)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Platform stats fetched successfully!", fiber.Map{
		"users":                userCount,
		"companies":            companyCount,
		"courses":              courseCount,
		"published_courses":    publishedCount,
		"enrollments":          enrollmentCount,
		"completed":            completedCount,
		"active_subscriptions": activeSubscriptions,
	})
}

// BulkDeleteEnrollments soft deletes every enrollment of a course along
// with the matching lesson progress. The sweep runs in the background and
// the request returns immediately with the accepted course id.
func (h *Handler) BulkDeleteEnrollments(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := h.DB.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	go h.sweepEnrollments(uint(courseID))

	return middleware.JsonResponse(c, fiber.StatusAccepted, true, "Enrollment deletion started.", fiber.Map{
		"course_id": courseID,
	})
}

func (h *Handler) sweepEnrollments(courseID uint) {
	h.Log.Infow("enrollment sweep started", "courseId", courseID)

	totalDeleted := int64(0)
	for {
		// Subquery keeps each UPDATE bounded to one batch
		sub := h.DB.Model(&courseModels.Enrollment{}).
			Select("id").
			Where("course_id = ? AND is_deleted = ?", courseID, false).
			Limit(deleteBatchSize)

		result := h.DB.Model(&courseModels.Enrollment{}).
			Where("id IN (?)", sub).
			Update("is_deleted", true)
		if result.Error != nil {
			h.Log.Errorw("enrollment sweep failed", "courseId", courseID, "deleted", totalDeleted, "error", result.Error)
			return
		}

		totalDeleted += result.RowsAffected
		if result.RowsAffected < deleteBatchSize {
			break
		}
		h.Log.Infow("enrollment sweep progress", "courseId", courseID, "deleted", totalDeleted)
	}

	if err := h.DB.Model(&courseModels.LessonProgress{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Update("is_deleted", true).Error; err != nil {
		h.Log.Errorw("lesson progress sweep failed", "courseId", courseID, "error", err)
		return
	}

	h.Log.Infow("enrollment sweep finished", "courseId", courseID, "deleted", totalDeleted)
}

// ListUsers pages through platform users for the admin console.
func (h *Handler) ListUsers(c *fiber.Ctx) error {
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

	db := h.DB.Model(&models.User{}).Where("is_deleted = ?", false)

	var total int64
	db.Count(&total)

	var users []models.User
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// BlockUser toggles the blocked flag on a user account.
func (h *Handler) BlockUser(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(int)
	blocked := c.Locals("blockStatus").(bool)

	var user models.User
	if err := h.DB.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.IsBlocked = blocked
	if blocked {
		user.FailedLoginAttempts = 0
	}
	if err := h.DB.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	message := "User unblocked successfully!"
	if blocked {
		message = "User blocked successfully!"
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, user)
}

// CreatePromoCode registers a discount code.
func (h *Handler) CreatePromoCode(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPromoCreate").(*struct {
		Code           string `json:"code" validate:"required,alphanum,min=4,max=32"`
		PercentOff     int    `json:"percent_off" validate:"required,min=1,max=100"`
		MaxRedemptions int    `json:"max_redemptions" validate:"omitempty,min=0"`
		ValidDays      int    `json:"valid_days" validate:"omitempty,min=1"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	code := billingModels.PromoCode{
		Code:           reqData.Code,
		PercentOff:     reqData.PercentOff,
		MaxRedemptions: reqData.MaxRedemptions,
		IsActive:       true,
	}
	if reqData.ValidDays > 0 {
		now := h.DB.NowFunc()
		until := now.AddDate(0, 0, reqData.ValidDays)
		code.ValidFrom = &now
		code.ValidUntil = &until
	}

	if err := h.DB.Create(&code).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Promo code already exists!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Promo code created successfully!", code)
}
