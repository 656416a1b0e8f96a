package companyController

import (
	"time"

	"dma/middleware"
	"dma/models"
	courseModels "dma/models/course"
	"dma/progress"
	"dma/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	DB  *gorm.DB
	Log *zap.SugaredLogger
}

func NewHandler(db *gorm.DB, log *zap.SugaredLogger) *Handler {
	return &Handler{DB: db, Log: log}
}

func (h *Handler) currentUser(c *fiber.Ctx) (models.User, bool) {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		_ = middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		return models.User{}, false
	}

	var user models.User
	if err := h.DB.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		_ = middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		return models.User{}, false
	}
	return user, true
}

// CreateCompany registers a company with the caller as its admin.
func (h *Handler) CreateCompany(c *fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return nil
	}

	if user.CompanyID != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already belongs to a company!", nil)
	}

	reqData, ok := c.Locals("validatedCompany").(*struct {
		Name         string `json:"name"`
		BillingEmail string `json:"billing_email"`
		TaxNumber    string `json:"tax_number"`
		SeatLimit    int    `json:"seat_limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	company := models.Company{
		Name:         reqData.Name,
		BillingEmail: reqData.BillingEmail,
		TaxNumber:    reqData.TaxNumber,
		SeatLimit:    reqData.SeatLimit,
		SeatsUsed:    1,
		OwnerUserID:  user.ID,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&company).Error; err != nil {
			return err
		}
		return tx.Model(&user).Updates(map[string]interface{}{
			"company_id": company.ID,
			"role":       "COMPANY_ADMIN",
		}).Error
	})
	if err != nil {
		h.Log.Errorw("failed to create company", "userId", user.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create company!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Company created successfully!", company)
}

// InviteMember issues a seat invite for an email address. The invite is
// redeemed with the token sent by mail.
func (h *Handler) InviteMember(c *fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return nil
	}

	if user.CompanyID == nil || user.Role != "COMPANY_ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only company admins can invite members!", nil)
	}

	reqData, ok := c.Locals("validatedInvite").(*struct {
		Email string `json:"email"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var company models.Company
	if err := h.DB.Where("id = ? AND is_deleted = ?", *user.CompanyID, false).First(&company).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Company not found!", nil)
	}

	// Seat limit counts accepted members plus open invites
	var pending int64
	h.DB.Model(&models.CompanyInvite{}).
		Where("company_id = ? AND accepted_at IS NULL AND is_deleted = ?", company.ID, false).
		Count(&pending)

	if company.SeatLimit > 0 && company.SeatsUsed+int(pending) >= company.SeatLimit {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "No free seats left on this plan!", nil)
	}

	invite := models.CompanyInvite{
		CompanyID: company.ID,
		Email:     reqData.Email,
		Token:     uuid.NewString(),
	}

	if err := h.DB.Create(&invite).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create invite!", nil)
	}

	go func(email, companyName, token string) {
		if err := utils.SendCompanyInviteEmail(email, companyName, token); err != nil {
			h.Log.Warnw("failed to send invite email", "email", email, "error", err)
		}
	}(invite.Email, company.Name, invite.Token)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Invite sent successfully!", fiber.Map{
		"invite_id": invite.ID,
		"email":     invite.Email,
	})
}

// AcceptInvite joins the caller to the inviting company.
func (h *Handler) AcceptInvite(c *fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return nil
	}

	reqData, ok := c.Locals("validatedInviteAccept").(*struct {
		Token string `json:"token"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var invite models.CompanyInvite
	if err := h.DB.Where("token = ? AND accepted_at IS NULL AND is_deleted = ?", reqData.Token, false).First(&invite).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Invite not found or already used!", nil)
	}

	if invite.Email != user.Email {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This invite was issued for a different email!", nil)
	}

	if user.CompanyID != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already belongs to a company!", nil)
	}

	var company models.Company
	if err := h.DB.Where("id = ? AND is_deleted = ?", invite.CompanyID, false).First(&company).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Company not found!", nil)
	}

	if company.SeatLimit > 0 && company.SeatsUsed >= company.SeatLimit {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "No free seats left on this plan!", nil)
	}

	now := time.Now()
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		invite.AcceptedAt = &now
		if err := tx.Save(&invite).Error; err != nil {
			return err
		}
		if err := tx.Model(&user).Update("company_id", company.ID).Error; err != nil {
			return err
		}
		return tx.Model(&company).Update("seats_used", gorm.Expr("seats_used + 1")).Error
	})
	if err != nil {
		h.Log.Errorw("failed to accept invite", "inviteId", invite.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to accept invite!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Invite accepted successfully!", company)
}

// GetCompanyOverview reports per-member enrollment progress for the
// company admin dashboard.
func (h *Handler) GetCompanyOverview(c *fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return nil
	}

	if user.CompanyID == nil || user.Role != "COMPANY_ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only company admins can view the overview!", nil)
	}

	var company models.Company
	if err := h.DB.Where("id = ? AND is_deleted = ?", *user.CompanyID, false).First(&company).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Company not found!", nil)
	}

	var members []models.User
	h.DB.Where("company_id = ? AND is_deleted = ?", company.ID, false).Find(&members)

	type MemberOverview struct {
		UserID     uint   `json:"user_id"`
		Name       string `json:"name"`
		Email      string `json:"email"`
		Enrolled   int    `json:"enrolled"`
		InProgress int    `json:"in_progress"`
		Completed  int    `json:"completed"`
	}

	overview := make([]MemberOverview, len(members))
	for i, member := range members {
		var enrollments []courseModels.Enrollment
		h.DB.Where("user_id = ? AND is_deleted = ?", member.ID, false).Find(&enrollments)

		m := MemberOverview{UserID: member.ID, Name: member.Name, Email: member.Email}
		for _, e := range enrollments {
			m.Enrolled++
			if progress.IsInProgress(e.Status) {
				m.InProgress++
			}
			if progress.IsCompletedStatus(e.Status) {
				m.Completed++
			}
		}
		overview[i] = m
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Company overview fetched successfully!", fiber.Map{
		"company": company,
		"members": overview,
	})
}
