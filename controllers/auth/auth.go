package authController

import (
	"time"

	"dma/config"
	"dma/middleware"
	"dma/models"
	"dma/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const maxFailedLogins = 5

type Handler struct {
	DB  *gorm.DB
	Log *zap.SugaredLogger
}

func NewHandler(db *gorm.DB, log *zap.SugaredLogger) *Handler {
	return &Handler{DB: db, Log: log}
}

func (h *Handler) Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Locale   string `json:"locale"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Check if email already exists
	if err := h.DB.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		h.Log.Errorw("failed to hash password", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: string(hashedPassword),
		Role:     "USER",
	}
	if reqData.Locale != "" {
		newUser.Locale = reqData.Locale
	}

	if err := h.DB.Create(&newUser).Error; err != nil {
		h.Log.Errorw("failed to create user", "email", reqData.Email, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	go func(email, name string) {
		if err := utils.SendWelcomeEmail(email, name); err != nil {
			h.Log.Warnw("failed to send welcome email", "email", email, "error", err)
		}
	}(newUser.Email, newUser.Name)

	// Clean Response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := h.DB.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if user.IsBlocked {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Your account is blocked. Contact support.", nil)
	}

	// Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		user.FailedLoginAttempts++
		if user.FailedLoginAttempts >= maxFailedLogins {
			user.IsBlocked = true
			h.Log.Warnw("user blocked after repeated failed logins", "userId", user.ID)
		}
		h.DB.Save(&user)

		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Wrong Password", nil)
	}

	now := time.Now()
	user.LastLogin = &now
	user.FailedLoginAttempts = 0
	if err := h.DB.Save(&user).Error; err != nil {
		h.Log.Errorw("failed to save last login time", "userId", user.ID, "error", err)
	}

	// Sanitize user data
	user.Password = ""

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// GetProfile returns the authenticated user's own record.
func (h *Handler) GetProfile(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := h.DB.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully.", user)
}

func (h *Handler) ChangeLoginPassword(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user session!", nil)
	}

	reqData, ok := c.Locals("validatedUser").(*struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
		CnfPassword     string `json:"cnfPassword"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := h.DB.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Validate current password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.CurrentPassword)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Current password is incorrect!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to hash password!", nil)
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&user).Update("password", string(hashedPassword)).Error
	})
	if err != nil {
		h.Log.Errorw("failed to update user password", "userId", user.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password changed successfully.", nil)
}
